package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tidyvault/tidyvault/pkg/internal/types"
)

// TestApplyOrganization 全部成功的应用：对象移动到整理命名空间，原键删除，历史追加一个批次.
func TestApplyOrganization(t *testing.T) {
	store := newFakeStore("Tax_Form_1099.pdf", "Lease_Agreement.pdf")
	svc := newTestService(store, nil)

	req := &types.ApplyOrganizationRequest{Entries: []types.OrganizationEntry{
		{ObjectKey: "Tax_Form_1099.pdf", SuggestedFolder: "Tax Documents"},
		{ObjectKey: "Lease_Agreement.pdf", SuggestedFolder: "tenant-records"},
	}}

	resp, err := svc.ApplyOrganization(context.Background(), req)
	if err != nil {
		t.Fatalf("ApplyOrganization failed: %v", err)
	}

	if resp.Total != 2 || resp.Success != 2 || resp.Failed != 0 {
		t.Fatalf("unexpected counters: %+v", resp)
	}

	if resp.BatchID == 0 {
		t.Error("expected non-zero batch ID")
	}

	// 文件夹名重新规范化后参与目标键
	if !store.has("_organized/tax-documents/Tax_Form_1099.pdf") {
		t.Error("expected object at _organized/tax-documents/Tax_Form_1099.pdf")
	}

	if !store.has("_organized/tenant-records/Lease_Agreement.pdf") {
		t.Error("expected object at _organized/tenant-records/Lease_Agreement.pdf")
	}

	if store.has("Tax_Form_1099.pdf") || store.has("Lease_Agreement.pdf") {
		t.Error("originals must be removed after successful apply")
	}

	history, err := svc.ListHistory(context.Background())
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}

	if history.Total != 1 || len(history.Batches[0].Actions) != 2 {
		t.Fatalf("expected one batch with two actions, got %+v", history)
	}
}

// TestApplyEmptyEntries 空条目列表是请求错误.
func TestApplyEmptyEntries(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	if _, err := svc.ApplyOrganization(context.Background(), &types.ApplyOrganizationRequest{}); err == nil {
		t.Error("expected error for empty entries")
	}

	req := &types.ApplyOrganizationRequest{Entries: []types.OrganizationEntry{{SuggestedFolder: "receipts"}}}
	if _, err := svc.ApplyOrganization(context.Background(), req); err == nil {
		t.Error("expected error for missing object_key")
	}
}

// TestApplyCopyFailureKeepsOriginals 任一复制失败时跳过删除阶段：
// 所有原对象保留，已复制的对子仍记入历史以便回退清理.
func TestApplyCopyFailureKeepsOriginals(t *testing.T) {
	store := newFakeStore("a_tax.pdf", "b_tax.pdf")
	store.failCopyTo["_organized/tax-documents/b_tax.pdf"] = true
	svc := newTestService(store, nil)

	req := &types.ApplyOrganizationRequest{Entries: []types.OrganizationEntry{
		{ObjectKey: "a_tax.pdf", SuggestedFolder: "tax-documents"},
		{ObjectKey: "b_tax.pdf", SuggestedFolder: "tax-documents"},
	}}

	resp, err := svc.ApplyOrganization(context.Background(), req)
	if err != nil {
		t.Fatalf("ApplyOrganization failed: %v", err)
	}

	if resp.Success != 0 || resp.Failed != 2 {
		t.Fatalf("expected no successes when delete phase is skipped, got %+v", resp)
	}

	// 原对象一个不少
	if !store.has("a_tax.pdf") || !store.has("b_tax.pdf") {
		t.Error("originals must be kept when any copy fails")
	}

	// 成功复制的对象在两处重复
	if !store.has("_organized/tax-documents/a_tax.pdf") {
		t.Error("copied object must remain at new location")
	}

	// 历史记录已发生的复制，供回退清理
	history, err := svc.ListHistory(context.Background())
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}

	if history.Total != 1 || len(history.Batches[0].Actions) != 1 {
		t.Fatalf("expected one batch with the copied pair, got %+v", history)
	}
}

// TestApplyRemoveFailure 复制成功但删除失败：条目标记失败，动作仍记入历史.
func TestApplyRemoveFailure(t *testing.T) {
	store := newFakeStore("a_tax.pdf")
	store.failRemove["a_tax.pdf"] = true
	svc := newTestService(store, nil)

	req := &types.ApplyOrganizationRequest{Entries: []types.OrganizationEntry{
		{ObjectKey: "a_tax.pdf", SuggestedFolder: "tax-documents"},
	}}

	resp, err := svc.ApplyOrganization(context.Background(), req)
	if err != nil {
		t.Fatalf("ApplyOrganization failed: %v", err)
	}

	if resp.Failed != 1 || resp.Results[0].Error == "" {
		t.Fatalf("expected failed result with error, got %+v", resp)
	}

	// 对象在两处重复，但绝不会两头皆空
	if !store.has("a_tax.pdf") || !store.has("_organized/tax-documents/a_tax.pdf") {
		t.Error("object must exist at both locations after remove failure")
	}

	history, err := svc.ListHistory(context.Background())
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}

	if history.Total != 1 {
		t.Fatalf("expected the batch to be recorded, got %+v", history)
	}
}

// TestMoveFile 手动移动作为独立的单动作批次记入历史.
func TestMoveFile(t *testing.T) {
	store := newFakeStore("random_notes.txt")
	svc := newTestService(store, nil)

	resp, err := svc.MoveFile(context.Background(), &types.MoveFileRequest{
		ObjectKey:    "random_notes.txt",
		TargetFolder: "Notes",
	})
	if err != nil {
		t.Fatalf("MoveFile failed: %v", err)
	}

	if !resp.Result.Success {
		t.Fatalf("expected success, got %+v", resp)
	}

	if !store.has("_organized/notes/random_notes.txt") || store.has("random_notes.txt") {
		t.Error("object not moved to target folder")
	}

	history, err := svc.ListHistory(context.Background())
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}

	if history.Total != 1 || history.Batches[0].Actions[0].Kind != types.MoveKindManual {
		t.Fatalf("expected one manual-move batch, got %+v", history)
	}
}

// TestAppendHistoryCorruptTolerated 历史文档损坏时追加路径按空历史处理，应用不受影响.
func TestAppendHistoryCorruptTolerated(t *testing.T) {
	store := newFakeStore("a_tax.pdf")
	store.objects["_metadata/organization_history.json"] = []byte("{not json")
	svc := newTestService(store, nil)

	req := &types.ApplyOrganizationRequest{Entries: []types.OrganizationEntry{
		{ObjectKey: "a_tax.pdf", SuggestedFolder: "tax-documents"},
	}}

	resp, err := svc.ApplyOrganization(context.Background(), req)
	if err != nil {
		t.Fatalf("ApplyOrganization failed: %v", err)
	}

	if resp.Success != 1 {
		t.Fatalf("expected success, got %+v", resp)
	}

	history, err := svc.ListHistory(context.Background())
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}

	if history.Total != 1 {
		t.Fatalf("expected corrupt history replaced by fresh batch, got %+v", history)
	}
}

// TestRevertHistoryCorruptFatal 历史文档损坏时回退必须失败，绝不能按空历史处理.
func TestRevertHistoryCorruptFatal(t *testing.T) {
	store := newFakeStore()
	store.objects["_metadata/organization_history.json"] = []byte("{not json")
	svc := newTestService(store, nil)

	_, err := svc.RevertLastOrganization(context.Background())
	if !errors.Is(err, ErrHistoryCorrupt) {
		t.Fatalf("expected ErrHistoryCorrupt, got %v", err)
	}
}

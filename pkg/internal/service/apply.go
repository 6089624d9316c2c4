package service

import (
	"context"
	"fmt"
	"time"

	minio "github.com/minio/minio-go/v7"

	"github.com/tidyvault/tidyvault/pkg/internal/classifier"
	"github.com/tidyvault/tidyvault/pkg/internal/types"
	nlog "github.com/tidyvault/tidyvault/pkg/log"
	"github.com/tidyvault/tidyvault/pkg/metrics"
)

// ApplyOrganization 执行一个（可能经用户编辑的）整理建议.
//
// 条目为准：文件夹名重新归一化，DistinctFolders 不参与执行.移动分两个阶段：
// 先按序复制全部对象到新键，全部复制成功后才删除原对象.因此任一次应用
// 尝试之后，每个文件都可以在原键或新键找到，不会两头皆空——部分失败最多
// 留下重复，不会丢失.
//
// 成功复制的对子记入一个 HistoryBatch 并追加到历史（即使有条目失败），
// 使回退总能清理实际发生过的移动.不对失败批次做补偿回滚.
func (o *OrganizerService) ApplyOrganization(ctx context.Context, req *types.ApplyOrganizationRequest) (*types.ApplyOrganizationResponse, error) {
	if len(req.Entries) == 0 {
		return nil, fmt.Errorf("no entries provided")
	}

	entries := make([]types.OrganizationEntry, len(req.Entries))
	copy(entries, req.Entries)

	for i := range entries {
		if entries[i].ObjectKey == "" {
			return nil, fmt.Errorf("entry %d: object_key is required", i)
		}

		entries[i].SuggestedFolder = classifier.Canonicalize(entries[i].SuggestedFolder)
	}

	applyMu.Lock()
	defer applyMu.Unlock()

	results := make([]types.MoveResult, len(entries))
	copied := make([]int, 0, len(entries))
	copyFailed := false

	// 阶段一：复制.一个复制对开始后不中途取消，避免对象悬在两可状态.
	for i, e := range entries {
		newPath := o.organizedPath(e.SuggestedFolder, e.ObjectKey)
		results[i] = types.MoveResult{OriginalPath: e.ObjectKey, NewPath: newPath}

		src := minio.CopySrcOptions{Bucket: o.bucket, Object: e.ObjectKey}
		dst := minio.CopyDestOptions{Bucket: o.bucket, Object: newPath}

		if _, err := o.store.CopyObject(ctx, dst, src); err != nil {
			results[i].Error = err.Error()
			copyFailed = true

			continue
		}

		copied = append(copied, i)
	}

	now := time.Now().UTC()
	batchID := now.Unix()
	actions := make([]types.MoveAction, 0, len(copied))

	// 所有已复制的对子都记入历史：即使删除被跳过或失败，
	// 对象存在于新键，回退需要知道它以便清理.
	recordAction := func(i int) {
		actions = append(actions, types.MoveAction{
			OriginalPath: results[i].OriginalPath,
			NewPath:      results[i].NewPath,
			Timestamp:    now.Format(time.RFC3339),
			Kind:         types.MoveKindBatch,
		})
	}

	if copyFailed {
		// 阶段二跳过：原对象全部保留，已复制的对象在两处重复
		nlog.Logger().Error().Int("copied", len(copied)).Int("total", len(entries)).
			Msg("apply aborted before delete phase: not every copy succeeded")

		for _, i := range copied {
			recordAction(i)
		}
	} else {
		// 阶段二：删除原对象
		for _, i := range copied {
			recordAction(i)

			if err := o.store.RemoveObject(ctx, o.bucket, results[i].OriginalPath, minio.RemoveObjectOptions{}); err != nil {
				results[i].Error = fmt.Sprintf("copy succeeded but failed to remove source: %v", err)

				continue
			}

			results[i].Success = true
		}
	}

	success := 0

	for _, r := range results {
		if r.Success {
			success++
		}
	}

	resp := &types.ApplyOrganizationResponse{
		Results: results,
		Total:   len(results),
		Success: success,
		Failed:  len(results) - success,
	}

	if len(actions) > 0 {
		if err := o.appendHistory(ctx, types.HistoryBatch{Batch: batchID, Actions: actions}); err != nil {
			// 对象已经移动但历史没记上，回退将无法覆盖这个批次
			nlog.Logger().Error().Err(err).Int64("batch", batchID).Msg("failed to append history batch")

			return resp, err
		}

		resp.BatchID = batchID

		metrics.BatchesApplied.Inc()
		metrics.ObjectsMoved.WithLabelValues(types.MoveKindBatch).Add(float64(success))
	}

	nlog.Logger().Info().Int64("batch", batchID).Int("total", resp.Total).
		Int("success", resp.Success).Int("failed", resp.Failed).Msg("organization applied")

	return resp, nil
}

// MoveFile 手动移动单个对象到目标文件夹，copy-then-delete，
// 作为独立的单动作批次记入历史.
func (o *OrganizerService) MoveFile(ctx context.Context, req *types.MoveFileRequest) (*types.MoveFileResponse, error) {
	if req.ObjectKey == "" {
		return nil, fmt.Errorf("object_key is required")
	}

	folder := classifier.Canonicalize(req.TargetFolder)
	newPath := o.organizedPath(folder, req.ObjectKey)

	if newPath == req.ObjectKey {
		return nil, fmt.Errorf("object already at %s", newPath)
	}

	applyMu.Lock()
	defer applyMu.Unlock()

	result := types.MoveResult{OriginalPath: req.ObjectKey, NewPath: newPath}

	src := minio.CopySrcOptions{Bucket: o.bucket, Object: req.ObjectKey}
	dst := minio.CopyDestOptions{Bucket: o.bucket, Object: newPath}

	if _, err := o.store.CopyObject(ctx, dst, src); err != nil {
		result.Error = err.Error()

		return &types.MoveFileResponse{Result: result}, fmt.Errorf("copy %s: %w", req.ObjectKey, err)
	}

	now := time.Now().UTC()
	batch := types.HistoryBatch{
		Batch: now.Unix(),
		Actions: []types.MoveAction{{
			OriginalPath: req.ObjectKey,
			NewPath:      newPath,
			Timestamp:    now.Format(time.RFC3339),
			Kind:         types.MoveKindManual,
		}},
	}

	if err := o.store.RemoveObject(ctx, o.bucket, req.ObjectKey, minio.RemoveObjectOptions{}); err != nil {
		result.Error = fmt.Sprintf("copy succeeded but failed to remove source: %v", err)
		// 对象在两处重复，批次仍记入历史以便回退清理
		if herr := o.appendHistory(ctx, batch); herr != nil {
			nlog.Logger().Error().Err(herr).Msg("failed to append history batch")
		}

		return &types.MoveFileResponse{Result: result, BatchID: batch.Batch},
			fmt.Errorf("remove source %s: %w", req.ObjectKey, err)
	}

	result.Success = true

	if err := o.appendHistory(ctx, batch); err != nil {
		nlog.Logger().Error().Err(err).Msg("failed to append history batch")

		return &types.MoveFileResponse{Result: result}, err
	}

	metrics.ObjectsMoved.WithLabelValues(types.MoveKindManual).Inc()

	return &types.MoveFileResponse{Result: result, BatchID: batch.Batch}, nil
}

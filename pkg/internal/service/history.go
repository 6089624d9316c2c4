package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	s3c "github.com/tidyvault/tidyvault/pkg/internal/storage/s3"
	"github.com/tidyvault/tidyvault/pkg/internal/types"
	nlog "github.com/tidyvault/tidyvault/pkg/log"
)

const historyContentType = "application/json"

// loadHistory 读取整理历史文档.对象不存在等价于空历史.
// strict 时解析失败返回 ErrHistoryCorrupt（无法读就无法回退）；
// 否则按空历史处理并告警（追加路径）.
func (o *OrganizerService) loadHistory(ctx context.Context, strict bool) ([]types.HistoryBatch, error) {
	data, err := o.store.GetObjectBytes(ctx, o.bucket, o.cfg.HistoryKey)
	if err != nil {
		if s3c.IsNotExist(err) {
			return []types.HistoryBatch{}, nil
		}

		return nil, fmt.Errorf("read history document: %w", err)
	}

	var batches []types.HistoryBatch
	if err := sonic.Unmarshal(data, &batches); err != nil {
		if strict {
			return nil, fmt.Errorf("%w: %v", ErrHistoryCorrupt, err)
		}

		nlog.Logger().Warn().Err(err).Str("key", o.cfg.HistoryKey).
			Msg("history document unparsable, treating as empty")

		return []types.HistoryBatch{}, nil
	}

	return batches, nil
}

// saveHistory 整体写回历史文档.
func (o *OrganizerService) saveHistory(ctx context.Context, batches []types.HistoryBatch) error {
	data, err := sonic.Marshal(batches)
	if err != nil {
		return fmt.Errorf("encode history document: %w", err)
	}

	if err := o.store.PutObjectBytes(ctx, o.bucket, o.cfg.HistoryKey, data, historyContentType); err != nil {
		return fmt.Errorf("write history document: %w", err)
	}

	return nil
}

// appendHistory 读-改-写追加一个批次.历史文档无并发写保护，
// 调用方（applyMu）保证同一时刻只有一个写者.
func (o *OrganizerService) appendHistory(ctx context.Context, batch types.HistoryBatch) error {
	batches, err := o.loadHistory(ctx, false)
	if err != nil {
		return err
	}

	batches = append(batches, batch)

	return o.saveHistory(ctx, batches)
}

// popLastBatch 读-改-写移除并返回最后一个批次.空历史返回 ErrNothingToRevert.
func (o *OrganizerService) popLastBatch(ctx context.Context) (*types.HistoryBatch, error) {
	batches, err := o.loadHistory(ctx, true)
	if err != nil {
		return nil, err
	}

	if len(batches) == 0 {
		return nil, ErrNothingToRevert
	}

	last := batches[len(batches)-1]

	if err := o.saveHistory(ctx, batches[:len(batches)-1]); err != nil {
		return nil, err
	}

	return &last, nil
}

// ListHistory 返回全部已应用批次，从旧到新.
func (o *OrganizerService) ListHistory(ctx context.Context) (*types.HistoryListResponse, error) {
	batches, err := o.loadHistory(ctx, false)
	if err != nil {
		return nil, err
	}

	return &types.HistoryListResponse{Batches: batches, Total: len(batches)}, nil
}

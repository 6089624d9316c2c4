package service

import (
	"context"
	"errors"
	"fmt"

	minio "github.com/minio/minio-go/v7"

	"github.com/tidyvault/tidyvault/pkg/internal/types"
	nlog "github.com/tidyvault/tidyvault/pkg/log"
	"github.com/tidyvault/tidyvault/pkg/metrics"
)

// RevertLastOrganization 回退最近一次应用的批次：从历史弹出最后一个批次，
// 按记录顺序把每个对象从新键复制回原键，再删除新键.
//
// 历史为空返回 Reverted=false 的正常结果.批次弹出后若有动作失败，
// 批次已不在历史中——已知的不对称，失败的动作会体现在结果里由调用方提示用户.
func (o *OrganizerService) RevertLastOrganization(ctx context.Context) (*types.RevertOrganizationResponse, error) {
	applyMu.Lock()
	defer applyMu.Unlock()

	batch, err := o.popLastBatch(ctx)
	if err != nil {
		if errors.Is(err, ErrNothingToRevert) {
			return &types.RevertOrganizationResponse{Reverted: false}, nil
		}

		return nil, err
	}

	results := make([]types.MoveResult, len(batch.Actions))
	success := 0

	for i, action := range batch.Actions {
		// 回退方向：newPath -> originalPath
		results[i] = types.MoveResult{OriginalPath: action.NewPath, NewPath: action.OriginalPath}

		src := minio.CopySrcOptions{Bucket: o.bucket, Object: action.NewPath}
		dst := minio.CopyDestOptions{Bucket: o.bucket, Object: action.OriginalPath}

		if _, err := o.store.CopyObject(ctx, dst, src); err != nil {
			results[i].Error = err.Error()

			continue
		}

		if err := o.store.RemoveObject(ctx, o.bucket, action.NewPath, minio.RemoveObjectOptions{}); err != nil {
			results[i].Error = fmt.Sprintf("copy succeeded but failed to remove source: %v", err)

			continue
		}

		results[i].Success = true
		success++
	}

	resp := &types.RevertOrganizationResponse{
		Reverted: true,
		BatchID:  batch.Batch,
		Results:  results,
		Total:    len(results),
		Success:  success,
		Failed:   len(results) - success,
	}

	metrics.BatchesReverted.Inc()
	metrics.ObjectsMoved.WithLabelValues("revert").Add(float64(success))

	nlog.Logger().Info().Int64("batch", batch.Batch).Int("total", resp.Total).
		Int("success", resp.Success).Int("failed", resp.Failed).Msg("organization batch reverted")

	return resp, nil
}

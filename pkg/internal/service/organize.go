package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"

	"github.com/tidyvault/tidyvault/pkg/internal/classifier"
	"github.com/tidyvault/tidyvault/pkg/internal/types"
	nlog "github.com/tidyvault/tidyvault/pkg/log"
	"github.com/tidyvault/tidyvault/pkg/metrics"
)

// ListUnorganized 列举桶内所有未整理对象：键中不含整理命名空间段，
// 且不属于引擎元数据.完整消费列举流，任何枚举错误都视为致命.
func (o *OrganizerService) ListUnorganized(ctx context.Context) ([]types.ObjectRecord, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	ch := o.store.ListObjects(ctx, o.bucket, opts)

	records := make([]types.ObjectRecord, 0, DefaultSliceCapacity)

	for obj := range ch {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		// skip "folders"
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}

		if o.isOrganized(obj.Key) || o.isMetadata(obj.Key) {
			continue
		}

		records = append(records, types.ObjectRecord{
			ObjectKey:    obj.Key,
			Size:         obj.Size,
			ETag:         strings.Trim(obj.ETag, "\""),
			LastModified: obj.LastModified.UTC().Format(time.RFC3339),
			DisplayName:  path.Base(obj.Key),
			Type:         strings.TrimPrefix(path.Ext(obj.Key), "."),
		})
	}

	return records, nil
}

// SuggestOrganization 为全部输入文件生成整理建议.
//
// 网关只看到展示名（不暴露路径结构）；网关失败或遗漏的文件由规则分类器
// 逐个兜底，因此建议总是覆盖全部输入——分类失败对调用方不可见.
func (o *OrganizerService) SuggestOrganization(ctx context.Context, records []types.ObjectRecord) *types.OrganizationSuggestion {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.DisplayName)
	}

	mapping := map[string]string{}
	gatewayFailed := false

	if o.gateway != nil && len(names) > 0 {
		m, err := o.gateway.Classify(ctx, names)
		if err != nil {
			// 整批降级为规则分类，不向上抛出
			gatewayFailed = true

			nlog.Logger().Warn().Err(err).Int("files", len(names)).
				Msg("classifier gateway failed, falling back to rule table for the whole batch")
		} else {
			mapping = m
		}
	}

	entries := make([]types.OrganizationEntry, 0, len(records))

	for _, r := range records {
		folder, ok := mapping[r.DisplayName]
		if !ok || folder == "" {
			folder = o.fallback.ClassifyName(r.DisplayName)

			switch {
			case gatewayFailed:
				metrics.ClassifierFallbacks.WithLabelValues("gateway-error").Inc()
			case o.gateway != nil:
				// 网关答了但漏掉了这个文件
				metrics.ClassifierFallbacks.WithLabelValues("partial").Inc()
				nlog.Logger().Warn().Str("file", r.DisplayName).Msg("classifier omitted file, using rule table")
			default:
				metrics.ClassifierFallbacks.WithLabelValues("disabled").Inc()
			}
		}

		entries = append(entries, types.OrganizationEntry{
			ObjectKey:       r.ObjectKey,
			SuggestedFolder: classifier.Canonicalize(folder),
			OriginalFolder:  parentFolder(r.ObjectKey),
		})
	}

	if o.cfg.ConsistencyPass {
		applyConsistencyPass(entries)
	}

	return &types.OrganizationSuggestion{
		Entries:         entries,
		DistinctFolders: distinctFolders(entries),
	}
}

// distinctFolders 条目中出现的文件夹集合，按首次出现顺序.
func distinctFolders(entries []types.OrganizationEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))

	for _, e := range entries {
		if _, ok := seen[e.SuggestedFolder]; ok {
			continue
		}

		seen[e.SuggestedFolder] = struct{}{}
		out = append(out, e.SuggestedFolder)
	}

	return out
}

// applyConsistencyPass 共享命名前缀（文件名中第一个分隔符之前的部分）的文件
// 归入同一文件夹：多数票决定，平票按首次出现顺序.尽力而为的归组，不是正确性要求.
func applyConsistencyPass(entries []types.OrganizationEntry) {
	groups := make(map[string][]int)

	var order []string

	for i, e := range entries {
		p := namePrefix(path.Base(e.ObjectKey))
		if p == "" {
			continue
		}

		if _, ok := groups[p]; !ok {
			order = append(order, p)
		}

		groups[p] = append(groups[p], i)
	}

	for _, p := range order {
		idxs := groups[p]
		if len(idxs) < 2 {
			continue
		}

		counts := make(map[string]int, len(idxs))
		for _, i := range idxs {
			counts[entries[i].SuggestedFolder]++
		}

		// 按条目顺序遍历，只有严格更多票才替换，平票自然保留先见者
		best := entries[idxs[0]].SuggestedFolder
		for _, i := range idxs {
			if f := entries[i].SuggestedFolder; counts[f] > counts[best] {
				best = f
			}
		}

		for _, i := range idxs {
			entries[i].SuggestedFolder = best
		}
	}
}

// namePrefix 文件名（去扩展名后）中第一个 '_' 或 '-' 之前的部分，没有分隔符时为空.
func namePrefix(name string) string {
	name = strings.TrimSuffix(name, path.Ext(name))

	i := strings.IndexAny(name, "_-")
	if i <= 0 {
		return ""
	}

	return name[:i]
}

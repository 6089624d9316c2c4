package handle

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tidyvault/tidyvault/pkg/internal/service"
	"github.com/tidyvault/tidyvault/pkg/internal/types"
	"github.com/tidyvault/tidyvault/pkg/log"
)

// ListUnorganizedFiles 列举未整理文件.
//
//	@Summary		列举未整理文件
//	@Description	列举桶内所有未整理（不在整理命名空间内）的对象，附带展示名和类型。
//	@Tags			整理
//	@Produce		json
//	@Success		200	{object}	types.ListUnorganizedResponse	"未整理文件列表"
//	@Failure		500	{object}	map[string]string				"服务器内部错误"
//	@Router			/api/v1/organize/files [get]
func ListUnorganizedFiles(c *gin.Context) {
	handleOrganizeOperation(c, "list unorganized", nil, nil,
		func(svc *service.OrganizerService, ctx context.Context) (any, error) {
			records, err := svc.ListUnorganized(ctx)
			if err != nil {
				return nil, err
			}

			return &types.ListUnorganizedResponse{Files: records, Total: len(records)}, nil
		},
	)
}

// SuggestOrganization 生成整理建议.
//
//	@Summary		生成整理建议
//	@Description	列举未整理文件并为每个文件建议一个目标文件夹。分类网关不可用时自动降级为规则分类，每个文件都有建议。
//	@Tags			整理
//	@Produce		json
//	@Success		200	{object}	types.OrganizationSuggestion	"整理建议"
//	@Failure		500	{object}	map[string]string				"服务器内部错误"
//	@Router			/api/v1/organize/suggest [post]
func SuggestOrganization(c *gin.Context) {
	handleOrganizeOperation(c, "suggest organization", nil, nil,
		func(svc *service.OrganizerService, ctx context.Context) (any, error) {
			records, err := svc.ListUnorganized(ctx)
			if err != nil {
				return nil, err
			}

			return svc.SuggestOrganization(ctx, records), nil
		},
	)
}

// ApplyOrganization 应用整理建议.
//
//	@Summary		应用整理建议
//	@Description	按提交的条目移动对象到整理命名空间并记录历史批次。存在失败条目时整体返回 500，响应体仍包含逐条结果。
//	@Tags			整理
//	@Accept			json
//	@Produce		json
//	@Param			req	body		types.ApplyOrganizationRequest	true	"整理条目"
//	@Success		200	{object}	types.ApplyOrganizationResponse	"移动结果"
//	@Failure		400	{object}	map[string]string				"请求参数错误"
//	@Failure		500	{object}	types.ApplyOrganizationResponse	"部分或全部移动失败"
//	@Router			/api/v1/organize/apply [post]
func ApplyOrganization(c *gin.Context) {
	l := log.Logger()

	var req types.ApplyOrganizationRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no entries provided"})

		return
	}

	ctx := c.Request.Context()
	svc := service.NewOrganizerService(ctx)

	resp, err := svc.ApplyOrganization(ctx, &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to apply organization")
		status := http.StatusInternalServerError

		if resp != nil {
			c.JSON(status, resp)
		} else {
			c.JSON(status, gin.H{"error": err.Error()})
		}

		return
	}

	// 逐条结果里有失败时整体视为失败，但调用方仍能看到每个对象的去向
	if resp.Failed > 0 {
		l.Error().Int("failed", resp.Failed).Int("total", resp.Total).Msg("organization applied with failures")
		c.JSON(http.StatusInternalServerError, resp)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// RevertOrganization 回退最近一次整理批次.
//
//	@Summary		回退最近一次整理
//	@Description	把最近一个历史批次的移动逆向执行。历史为空返回 reverted=false 的正常结果。
//	@Tags			整理
//	@Produce		json
//	@Success		200	{object}	types.RevertOrganizationResponse	"回退结果"
//	@Failure		500	{object}	types.RevertOrganizationResponse	"部分或全部回退失败"
//	@Router			/api/v1/organize/revert [post]
func RevertOrganization(c *gin.Context) {
	l := log.Logger()

	ctx := c.Request.Context()
	svc := service.NewOrganizerService(ctx)

	resp, err := svc.RevertLastOrganization(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to revert organization")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	if resp.Failed > 0 {
		l.Error().Int("failed", resp.Failed).Int("total", resp.Total).Msg("organization reverted with failures")
		c.JSON(http.StatusInternalServerError, resp)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListOrganizationHistory 查看整理历史.
//
//	@Summary		查看整理历史
//	@Description	返回全部已应用的移动批次，从旧到新。
//	@Tags			整理
//	@Produce		json
//	@Success		200	{object}	types.HistoryListResponse	"历史批次"
//	@Failure		500	{object}	map[string]string			"服务器内部错误"
//	@Router			/api/v1/organize/history [get]
func ListOrganizationHistory(c *gin.Context) {
	handleOrganizeOperation(c, "list history", nil, nil,
		func(svc *service.OrganizerService, ctx context.Context) (any, error) {
			return svc.ListHistory(ctx)
		},
	)
}

// MoveFile 手动移动单个文件.
//
//	@Summary		手动移动单个文件
//	@Description	把单个对象移动到指定文件夹（整理命名空间内），作为独立批次记入历史。
//	@Tags			文件操作
//	@Accept			json
//	@Produce		json
//	@Param			req	body		types.MoveFileRequest	true	"移动请求"
//	@Success		200	{object}	types.MoveFileResponse	"移动结果"
//	@Failure		400	{object}	map[string]string		"请求参数错误"
//	@Failure		500	{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/files/move [post]
func MoveFile(c *gin.Context) {
	var req types.MoveFileRequest
	handleOrganizeOperation(c, "move file", &req,
		func() error {
			if req.ObjectKey == "" || req.TargetFolder == "" {
				return fmt.Errorf("object_key and target_folder are required")
			}

			return nil
		},
		func(svc *service.OrganizerService, ctx context.Context) (any, error) {
			return svc.MoveFile(ctx, &req)
		},
	)
}

// Package handle 提供请求处理器的实现，用于处理 HTTP 请求.
package handle

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tidyvault/tidyvault/pkg/internal/service"
	"github.com/tidyvault/tidyvault/pkg/log"
)

func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// handleOrganizeOperation 封装公共流程：绑定/校验/调用 service/统一返回。
func handleOrganizeOperation(c *gin.Context, operation string, req any,
	validate func() error,
	serviceCall func(*service.OrganizerService, context.Context) (any, error),
) {
	l := log.Logger()

	if req != nil {
		if err := c.ShouldBind(req); err != nil {
			l.Warn().Err(err).Str("op", operation).Msg("invalid request")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

			return
		}
	}

	if validate != nil {
		if err := validate(); err != nil {
			l.Warn().Err(err).Str("op", operation).Msg("invalid payload")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

			return
		}
	}

	ctx := c.Request.Context()
	svc := service.NewOrganizerService(ctx)

	resp, err := serviceCall(svc, ctx)
	if err != nil {
		l.Error().Err(err).Str("op", operation).Msg("service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, resp)
}

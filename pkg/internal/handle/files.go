package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tidyvault/tidyvault/pkg/internal/service"
	"github.com/tidyvault/tidyvault/pkg/internal/types"
	"github.com/tidyvault/tidyvault/pkg/log"
)

// UploadFileURL 为文件上传生成预签名 PUT URL（单个/批量）.
//
//	@Summary		生成预签名PUT上传URL
//	@Description	为文件上传生成预签名的PUT URL，客户端可直接PUT上传文件到未整理命名空间
//	@Tags			文件上传
//	@Accept			json
//	@Produce		json
//	@Param			files	body		types.UploadFilesRequest	true	"文件上传请求"
//	@Success		200		{object}	types.UploadFilesResponse	"预签名URL响应"
//	@Failure		400		{object}	map[string]string			"请求参数错误"
//	@Failure		500		{object}	map[string]string			"服务器内部错误"
//	@Router			/api/v1/files [post]
func UploadFileURL(c *gin.Context) {
	l := log.Logger()

	var req types.UploadFilesRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if len(req.Files) == 0 {
		l.Warn().Msg("no files provided in request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})

		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.PresignedPutURLs(c.Request.Context(), &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to generate presigned PUT URLs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	l.Info().Int("result_count", len(resp.Results)).Msg("successfully generated presigned PUT URLs")
	c.JSON(http.StatusOK, resp)
}

// UploadSingleFile 处理单个小文件上传.
//
//	@Summary		上传单个小文件
//	@Description	直接上传单个小文件到未整理命名空间（桶根）
//	@Tags			文件上传
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file						true	"上传的文件"
//	@Param			file_name	formData	string						false	"自定义文件名"
//	@Success		200			{object}	types.UploadFileResponse	"文件上传响应"
//	@Failure		400			{object}	map[string]string			"请求参数错误"
//	@Failure		500			{object}	map[string]string			"服务器内部错误"
//	@Router			/api/v1/files/upload [post]
func UploadSingleFile(c *gin.Context) {
	l := log.Logger()

	file, err := c.FormFile("file")
	if err != nil {
		l.Warn().Err(err).Msg("failed to get uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})

		return
	}

	fileName := file.Filename
	if custom := c.PostForm("file_name"); custom != "" {
		fileName = custom
	}

	src, err := file.Open()
	if err != nil {
		l.Error().Err(err).Msg("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process file"})

		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.UploadSingleFile(c.Request.Context(), fileName, src, file.Size, contentType)
	if err != nil {
		l.Error().Err(err).Msg("failed to upload file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, resp)
}

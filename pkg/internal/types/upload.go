package types

// UploadFileItem 单个待上传文件.
type UploadFileItem struct {
	FileName    string `binding:"required" json:"file_name"`
	ContentType string `json:"content_type,omitempty"`
}

// UploadFilesRequest 批量上传请求（预签名 PUT 模式）.
type UploadFilesRequest struct {
	Files []UploadFileItem `binding:"required" json:"files"`
}

// PresignedPutItem 单个文件的预签名上传信息.
type PresignedPutItem struct {
	ObjectKey string `json:"object_key"`
	PutURL    string `json:"put_url"`
	ExpiresIn int    `json:"expires_in"` // 秒
}

// UploadFilesResponse 批量上传响应.
type UploadFilesResponse struct {
	Results []PresignedPutItem `json:"results"`
}

// UploadFileResponse 直接上传单个小文件的响应.
type UploadFileResponse struct {
	ObjectKey    string `json:"object_key"`
	Size         int64  `json:"size"`
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

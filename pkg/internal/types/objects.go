// Package types 定义 HTTP 层与 service 层共享的请求、响应和领域数据结构.
package types

// ObjectRecord 桶内一个未整理对象的列举信息，仅在单次请求内有效，不做持久化.
type ObjectRecord struct {
	ObjectKey    string `json:"object_key"`            // 完整对象键
	Size         int64  `json:"size"`                  // 对象大小（字节）
	LastModified string `json:"last_modified"`         // RFC3339 格式的最后修改时间
	DisplayName  string `json:"display_name"`          // 键的最后一段（文件名）
	Type         string `json:"type,omitempty"`        // 文件扩展名（不含点）
	ETag         string `json:"etag,omitempty"`        // 对象ETag
}

// ListUnorganizedResponse 未整理文件列表响应.
type ListUnorganizedResponse struct {
	Files []ObjectRecord `json:"files"`
	Total int            `json:"total"`
}

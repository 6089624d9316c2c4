package types

// OrganizationEntry 单个文件的整理条目：目标文件夹 + 移动前所在文件夹.
type OrganizationEntry struct {
	ObjectKey       string `binding:"required" json:"object_key"`
	SuggestedFolder string `binding:"required" json:"suggested_folder"`           // 归一化后的文件夹名
	OriginalFolder  string `json:"original_folder,omitempty"`                     // 列举时对象键的父级段，根目录为空
}

// OrganizationSuggestion 整理建议：每个输入文件恰有一个条目.
// DistinctFolders 恒等于 Entries 中出现的文件夹集合（首次出现顺序）.
type OrganizationSuggestion struct {
	Entries         []OrganizationEntry `json:"entries"`
	DistinctFolders []string            `json:"distinct_folders"`
}

// ApplyOrganizationRequest 应用整理建议请求.条目为准，DistinctFolders 仅供展示，
// 提交后由服务端重新推导.
type ApplyOrganizationRequest struct {
	Entries         []OrganizationEntry `binding:"required" json:"entries"`
	DistinctFolders []string            `json:"distinct_folders,omitempty"`
}

// MoveResult 单个对象移动结果.
type MoveResult struct {
	OriginalPath string `json:"original_path"`
	NewPath      string `json:"new_path"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// ApplyOrganizationResponse 应用整理建议响应.
type ApplyOrganizationResponse struct {
	BatchID int64        `json:"batch_id,omitempty"` // 写入历史的批次ID（时间戳）
	Results []MoveResult `json:"results"`
	Total   int          `json:"total"`
	Success int          `json:"success"`
	Failed  int          `json:"failed"`
}

// RevertOrganizationResponse 回退最近批次响应.Reverted 为 false 表示历史为空，属正常结果.
type RevertOrganizationResponse struct {
	Reverted bool         `json:"reverted"`
	BatchID  int64        `json:"batch_id,omitempty"`
	Results  []MoveResult `json:"results,omitempty"`
	Total    int          `json:"total"`
	Success  int          `json:"success"`
	Failed   int          `json:"failed"`
}

// MoveFileRequest 手动移动单个文件到目标文件夹.
type MoveFileRequest struct {
	ObjectKey    string `binding:"required" json:"object_key"`
	TargetFolder string `binding:"required" json:"target_folder"`
}

// MoveFileResponse 手动移动响应.
type MoveFileResponse struct {
	Result  MoveResult `json:"result"`
	BatchID int64      `json:"batch_id,omitempty"`
}

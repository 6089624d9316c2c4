package types

// 移动动作类型.
const (
	MoveKindBatch  = "batch-organize" // 一次整理批次产生的移动
	MoveKindManual = "manual-move"    // 手动单文件移动
)

// MoveAction 历史中记录的一次已完成移动.
type MoveAction struct {
	OriginalPath string `json:"original_path"`
	NewPath      string `json:"new_path"`
	Timestamp    string `json:"timestamp"` // RFC3339
	Kind         string `json:"kind,omitempty"`
}

// HistoryBatch 一次应用调用产生的批次，回退的最小单位.
type HistoryBatch struct {
	Batch   int64        `json:"batch"` // 批次ID，应用时刻的Unix时间戳
	Actions []MoveAction `json:"actions"`
}

// HistoryListResponse 整理历史响应，批次按应用顺序从旧到新.
type HistoryListResponse struct {
	Batches []HistoryBatch `json:"batches"`
	Total   int            `json:"total"`
}

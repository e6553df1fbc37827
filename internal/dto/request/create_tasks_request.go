package request

// CreateTasksRequest 批量创建任务请求
// Descriptions 允许为空切片（无操作），不允许缺失
// 任务归属取认证中间件解析出的用户身份
type CreateTasksRequest struct {
	GroupId      string   `json:"group_id" binding:"required"`
	Descriptions []string `json:"descriptions"`
}

package request

// ToggleTaskRequest 切换任务完成状态请求
// 操作者取认证中间件解析出的用户身份
type ToggleTaskRequest struct {
	TaskId string `json:"task_id" binding:"required"`
}

package request

// GenerateTasksRequest 根据用户输入生成建议任务请求
// Prompt 是用户的自由文本（"最近为……而焦虑"），原样交给文本生成服务
// 任务归属取认证中间件解析出的用户身份
type GenerateTasksRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	Prompt  string `json:"prompt" binding:"required"`
}

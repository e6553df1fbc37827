package request

// GetTaskListRequest 获取成员任务列表请求
// 查询者只能看自己的任务列表，身份取认证中间件解析结果
type GetTaskListRequest struct {
	GroupId string `form:"groupId" binding:"required"`
}

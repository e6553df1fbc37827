package request

// CreateGroupRequest 创建小组请求
// 创建者取认证中间件解析出的用户身份，不从请求体读取
// 使用位置:
//   - internal/handler/group_handler.go: CreateGroup
//   - internal/service/group/service.go: CreateGroup
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

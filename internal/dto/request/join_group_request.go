package request

// JoinGroupRequest 通过邀请码加入小组请求
// Code 在业务层做 trim + 大写归一化，这里不限制大小写
// 加入者取认证中间件解析出的用户身份
type JoinGroupRequest struct {
	Code string `json:"code" binding:"required"`
}

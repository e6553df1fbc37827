package request

// GetGroupInfoRequest 获取小组详情请求
type GetGroupInfoRequest struct {
	GroupId string `form:"groupId" binding:"required"`
}

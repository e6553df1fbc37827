package request

// GetGroupMemberListRequest 获取小组成员列表请求
type GetGroupMemberListRequest struct {
	GroupId string `form:"groupId" binding:"required"`
}

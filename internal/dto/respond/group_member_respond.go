package respond

// GetGroupMemberListRespond 小组成员列表响应
type GetGroupMemberListRespond struct {
	UserId   string `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Role     int8   `json:"role"`
}

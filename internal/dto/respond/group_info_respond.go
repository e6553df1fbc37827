package respond

// GetGroupInfoRespond 获取小组信息响应
// 使用位置:
//   - internal/service/group/service.go: CreateGroup, JoinGroupByCode, GetGroupInfo, GetMyGroup
type GetGroupInfoRespond struct {
	Uuid         string `json:"uuid"`
	Name         string `json:"name"`
	InviteCode   string `json:"invite_code"`
	OwnerId      string `json:"owner_id"`
	MemberCnt    int    `json:"member_cnt"`
	CreatureMood int    `json:"creature_mood"`
}

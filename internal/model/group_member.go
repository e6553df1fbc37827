package model

import "gorm.io/gorm"

// GroupMember 小组成员关联表
// UserUuid 上的唯一索引落实"一个用户同时只能在一个小组"的不变量：
// 并发加入时先落库者胜出，后者撞唯一键
type GroupMember struct {
	gorm.Model
	GroupUuid string `gorm:"type:char(20);index;not null;comment:小组ID"`
	UserUuid  string `gorm:"type:char(20);uniqueIndex;not null;comment:用户ID"`
	Role      int8   `gorm:"default:1;comment:1普通成员 2创建者"`
}

func (GroupMember) TableName() string {
	return "group_member"
}

// GroupMemberWithUserInfo 小组成员详细信息（含用户资料）
// 用于成员列表展示
type GroupMemberWithUserInfo struct {
	UserId   string `json:"userId"`   // 用户 UUID
	Username string `json:"username"` // 用户名
	Avatar   string `json:"avatar"`   // 用户头像
	Role     int8   `json:"role"`     // 成员角色
}

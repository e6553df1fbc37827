package model

import (
	"gorm.io/gorm"
)

// GroupInfo 小组信息模型
// InviteCode 上的唯一索引是邀请码唯一性的最终裁决：
// 生成侧只负责随机性，落库冲突时由业务层换码重试
type GroupInfo struct {
	gorm.Model
	Uuid         string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:小组唯一id"`
	Name         string `gorm:"column:name;type:varchar(50);not null;comment:小组名称"`
	InviteCode   string `gorm:"column:invite_code;uniqueIndex;type:char(6);not null;comment:邀请码，统一存大写"`
	OwnerId      string `gorm:"column:owner_id;type:char(20);not null;comment:创建者uuid"`
	MemberCnt    int    `gorm:"column:member_cnt;default:1;comment:成员数"`
	CreatureMood int    `gorm:"column:creature_mood;default:50;comment:吉祥物心情值，0-100"`
}

func (GroupInfo) TableName() string {
	return "group_info"
}

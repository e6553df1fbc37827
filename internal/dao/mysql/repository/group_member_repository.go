// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupMemberRepository 接口
package repository

import (
	"gorm.io/gorm"

	"critter_crew_server/internal/model"
)

// groupMemberRepository GroupMemberRepository 接口的实现
type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository 创建 GroupMemberRepository 实例
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// FindByUserUuid 查找用户的成员关系
// user_uuid 唯一索引保证至多一条
func (r *groupMemberRepository) FindByUserUuid(userUuid string) (*model.GroupMember, error) {
	var member model.GroupMember
	if err := r.db.First(&member, "user_uuid = ?", userUuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询成员关系 user_uuid=%s", userUuid)
	}
	return &member, nil
}

// FindMembersWithUserInfo 查找小组成员（含用户资料）
// 按 group_member.id 升序，即加入先后顺序，创建者永远排第一
func (r *groupMemberRepository) FindMembersWithUserInfo(groupUuid string) ([]model.GroupMemberWithUserInfo, error) {
	var members []model.GroupMemberWithUserInfo
	err := r.db.Model(&model.GroupMember{}).
		Select("group_member.user_uuid as user_id, user_info.username as username, user_info.avatar as avatar, group_member.role as role").
		Joins("join user_info on user_info.uuid = group_member.user_uuid").
		Where("group_member.group_uuid = ?", groupUuid).
		Order("group_member.id asc").
		Scan(&members).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询小组成员 group_uuid=%s", groupUuid)
	}
	return members, nil
}

// CreateGroupMember 添加小组成员
func (r *groupMemberRepository) CreateGroupMember(member *model.GroupMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "添加小组成员")
	}
	return nil
}

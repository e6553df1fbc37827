// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupRepository 接口，处理小组相关的数据库操作
package repository

import (
	"strings"

	"gorm.io/gorm"

	"critter_crew_server/internal/model"
	"critter_crew_server/pkg/constants"
)

// groupRepository GroupRepository 接口的实现
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建 GroupRepository 实例
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// FindByUuid 根据 UUID 查找小组
func (r *groupRepository) FindByUuid(uuid string) (*model.GroupInfo, error) {
	var group model.GroupInfo
	if err := r.db.First(&group, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询小组 uuid=%s", uuid)
	}
	return &group, nil
}

// FindByUuidForUpdate 根据 UUID 查找小组并锁定该行（MySQL 下 SELECT ... FOR UPDATE）
// 调用方必须处于事务内
func (r *groupRepository) FindByUuidForUpdate(uuid string) (*model.GroupInfo, error) {
	var group model.GroupInfo
	if err := withForUpdate(r.db).First(&group, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "锁定小组 uuid=%s", uuid)
	}
	return &group, nil
}

// FindByInviteCode 根据邀请码查找小组
// 邀请码统一存大写，这里做一次兜底转换，保证比较不区分大小写
func (r *groupRepository) FindByInviteCode(code string) (*model.GroupInfo, error) {
	var group model.GroupInfo
	if err := r.db.First(&group, "invite_code = ?", strings.ToUpper(code)).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询小组 invite_code=%s", code)
	}
	return &group, nil
}

// CreateGroup 创建小组
// 邀请码唯一索引冲突会以 gorm.ErrDuplicatedKey 上抛，由业务层换码重试
func (r *groupRepository) CreateGroup(group *model.GroupInfo) error {
	if err := r.db.Create(group).Error; err != nil {
		return wrapDBError(err, "创建小组")
	}
	return nil
}

// UpdateMood 写入小组心情值
// 越界输入收敛到 [0,100]，不拒绝
func (r *groupRepository) UpdateMood(uuid string, mood int) error {
	if mood < constants.MoodMin {
		mood = constants.MoodMin
	}
	if mood > constants.MoodMax {
		mood = constants.MoodMax
	}
	if err := r.db.Model(&model.GroupInfo{}).Where("uuid = ?", uuid).UpdateColumn("creature_mood", mood).Error; err != nil {
		return wrapDBErrorf(err, "更新小组心情 uuid=%s", uuid)
	}
	return nil
}

// IncrementMemberCount 增加成员计数
// 使用 UpdateColumn + gorm.Expr 实现原子自增
func (r *groupRepository) IncrementMemberCount(uuid string) error {
	if err := r.db.Model(&model.GroupInfo{}).Where("uuid = ?", uuid).UpdateColumn("member_cnt", gorm.Expr("member_cnt + ?", 1)).Error; err != nil {
		return wrapDBErrorf(err, "增加小组成员数 uuid=%s", uuid)
	}
	return nil
}

// Package repository 提供数据访问层的具体实现
// 本文件实现 TaskRepository 接口，处理任务相关的数据库操作
package repository

import (
	"gorm.io/gorm"

	"critter_crew_server/internal/model"
)

// taskRepository TaskRepository 接口的实现
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository 创建 TaskRepository 实例
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// FindByUuid 根据 UUID 查找任务
func (r *taskRepository) FindByUuid(uuid string) (*model.Task, error) {
	var task model.Task
	if err := r.db.First(&task, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询任务 uuid=%s", uuid)
	}
	return &task, nil
}

// FindByUuidForUpdate 根据 UUID 查找任务并锁定该行（MySQL 下 SELECT ... FOR UPDATE）
// 调用方必须处于事务内
func (r *taskRepository) FindByUuidForUpdate(uuid string) (*model.Task, error) {
	var task model.Task
	if err := withForUpdate(r.db).First(&task, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "锁定任务 uuid=%s", uuid)
	}
	return &task, nil
}

// FindByGroupAndUser 查找某成员在小组内的任务
// 按 id 升序，即创建先后顺序
func (r *taskRepository) FindByGroupAndUser(groupUuid, userUuid string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).
		Order("id asc").
		Find(&tasks).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询任务列表 group_uuid=%s user_uuid=%s", groupUuid, userUuid)
	}
	return tasks, nil
}

// CreateTasks 批量创建任务
// 空切片直接返回，不产生任何数据库操作
func (r *taskRepository) CreateTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	if err := r.db.Create(&tasks).Error; err != nil {
		return wrapDBError(err, "批量创建任务")
	}
	return nil
}

// UpdateCompleted 更新任务完成状态
func (r *taskRepository) UpdateCompleted(uuid string, completed bool) error {
	if err := r.db.Model(&model.Task{}).Where("uuid = ?", uuid).UpdateColumn("completed", completed).Error; err != nil {
		return wrapDBErrorf(err, "更新任务状态 uuid=%s", uuid)
	}
	return nil
}

// CountByGroupUuid 统计小组的任务总数与已完成数
func (r *taskRepository) CountByGroupUuid(groupUuid string) (total int64, completed int64, err error) {
	if err = r.db.Model(&model.Task{}).Where("group_uuid = ?", groupUuid).Count(&total).Error; err != nil {
		return 0, 0, wrapDBErrorf(err, "统计任务总数 group_uuid=%s", groupUuid)
	}
	if err = r.db.Model(&model.Task{}).Where("group_uuid = ? AND completed = ?", groupUuid, true).Count(&completed).Error; err != nil {
		return 0, 0, wrapDBErrorf(err, "统计已完成任务数 group_uuid=%s", groupUuid)
	}
	return total, completed, nil
}

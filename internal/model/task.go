package model

import "gorm.io/gorm"

// Task 任务模型
// 每条任务归属于唯一的 (小组, 成员)，两者创建后不可变更
// Completed 只能由归属成员切换
type Task struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:任务唯一id"`
	GroupUuid   string `gorm:"column:group_uuid;type:char(20);index;not null;comment:归属小组"`
	UserUuid    string `gorm:"column:user_uuid;type:char(20);index;not null;comment:归属成员"`
	Description string `gorm:"column:description;type:varchar(500);not null;comment:任务描述"`
	Completed   bool   `gorm:"column:completed;default:false;comment:是否完成"`
}

func (Task) TableName() string {
	return "task"
}

// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"gorm.io/gorm"

	"critter_crew_server/internal/model"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.UserInfo, error)
	// CreateUser 创建新用户
	CreateUser(user *model.UserInfo) error
}

// GroupRepository 小组数据访问接口
type GroupRepository interface {
	// FindByUuid 根据 UUID 查找小组
	FindByUuid(uuid string) (*model.GroupInfo, error)
	// FindByUuidForUpdate 根据 UUID 查找小组并锁定该行
	// 任务变动事务必须先拿到组行锁再统计完成率，保证心情值基于已提交的全量快照
	FindByUuidForUpdate(uuid string) (*model.GroupInfo, error)
	// FindByInviteCode 根据邀请码查找小组（邀请码统一存大写）
	FindByInviteCode(code string) (*model.GroupInfo, error)
	// CreateGroup 创建新小组
	CreateGroup(group *model.GroupInfo) error
	// UpdateMood 写入小组心情值，越界值收敛到 [0,100]
	// 仅供心情聚合器调用
	UpdateMood(uuid string, mood int) error
	// IncrementMemberCount 增加成员计数（原子自增）
	IncrementMemberCount(uuid string) error
}

// GroupMemberRepository 小组成员数据访问接口
type GroupMemberRepository interface {
	// FindByUserUuid 查找用户的成员关系（单小组约束下至多一条）
	FindByUserUuid(userUuid string) (*model.GroupMember, error)
	// FindMembersWithUserInfo 查找小组成员（含用户资料），按加入先后排序
	FindMembersWithUserInfo(groupUuid string) ([]model.GroupMemberWithUserInfo, error)
	// CreateGroupMember 添加小组成员
	// user_uuid 唯一索引是单小组约束的最终守卫，冲突以 gorm.ErrDuplicatedKey 上抛
	CreateGroupMember(member *model.GroupMember) error
}

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	// FindByUuid 根据 UUID 查找任务
	FindByUuid(uuid string) (*model.Task, error)
	// FindByUuidForUpdate 根据 UUID 查找任务并锁定该行
	// 作为切换事务的第一条语句使用：REPEATABLE READ 下普通读会在此刻固定快照，
	// 锁定读不固定，后续统计才能看到别的事务已提交的变动
	FindByUuidForUpdate(uuid string) (*model.Task, error)
	// FindByGroupAndUser 查找某成员在小组内的任务，按创建先后排序
	FindByGroupAndUser(groupUuid, userUuid string) ([]model.Task, error)
	// CreateTasks 批量创建任务，空切片为无操作
	CreateTasks(tasks []model.Task) error
	// UpdateCompleted 更新任务完成状态
	UpdateCompleted(uuid string, completed bool) error
	// CountByGroupUuid 统计小组的任务总数与已完成数
	// 心情重算每次都走这里取全量快照，不维护增量计数
	CountByGroupUuid(groupUuid string) (total int64, completed int64, err error)
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db          *gorm.DB              // GORM 数据库实例
	User        UserRepository        // 用户 Repository
	Group       GroupRepository       // 小组 Repository
	GroupMember GroupMemberRepository // 小组成员 Repository
	Task        TaskRepository        // 任务 Repository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Group:       NewGroupRepository(db),
		GroupMember: NewGroupMemberRepository(db),
		Task:        NewTaskRepository(db),
	}
}

// DB 返回底层 GORM 实例，仅供初始化和测试使用
func (r *Repositories) DB() *gorm.DB {
	return r.db
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}

// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"critter_crew_server/internal/dto/request"
	"critter_crew_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理用户注册、登录
type UserService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
}

// GroupService 小组业务接口
// 处理小组创建、邀请码加入、信息查询和成员列表
// 所有操作都显式接收发起者的用户 ID，不读取任何会话态
type GroupService interface {
	// CreateGroup 创建小组并把创建者登记为第一个成员
	// 创建者已在小组中时整体失败，不会留下半个小组
	CreateGroup(req request.CreateGroupRequest, ownerId string) (*respond.GetGroupInfoRespond, error)
	// JoinGroupByCode 通过邀请码加入小组
	// 邀请码先做 trim + 大写归一化；重复加入（包括加入同一个小组）一律拒绝
	JoinGroupByCode(code, userId string) (*respond.GetGroupInfoRespond, error)
	// GetGroupInfo 获取小组详情
	GetGroupInfo(groupId string) (*respond.GetGroupInfoRespond, error)
	// GetMyGroup 获取用户当前所在小组；没有小组时返回 (nil, nil) 而非错误
	GetMyGroup(userId string) (*respond.GetGroupInfoRespond, error)
	// GetGroupMemberList 获取小组成员列表，按加入先后排序（创建者第一）
	GetGroupMemberList(groupId string) ([]respond.GetGroupMemberListRespond, error)
}

// TaskService 任务业务接口
// 处理任务生成、批量创建、完成状态切换和列表查询
// 每次任务变动都在同一事务内触发小组心情重算
type TaskService interface {
	// GenerateTasks 调用外部文本生成服务产出建议任务并落库
	GenerateTasks(req request.GenerateTasksRequest, userId string) ([]respond.TaskRespond, error)
	// CreateTasks 按描述列表批量创建任务；空列表为无操作，返回空结果
	CreateTasks(req request.CreateTasksRequest, userId string) ([]respond.TaskRespond, error)
	// ToggleTask 切换任务完成状态，仅归属成员可操作
	ToggleTask(taskId, userId string) (*respond.TaskRespond, error)
	// GetTaskList 获取某成员在小组内的任务列表，按创建先后排序
	GetTaskList(groupId, userId string) ([]respond.TaskRespond, error)
}

// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"critter_crew_server/internal/dao/mysql/repository"
	myredis "critter_crew_server/internal/dao/redis"
	"critter_crew_server/internal/infrastructure/suggest"
	"critter_crew_server/internal/service/group"
	"critter_crew_server/internal/service/task"
	"critter_crew_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	User  UserService  // 用户 Service
	Group GroupService // 小组 Service
	Task  TaskService  // 任务 Service
}

// NewServices 创建并注入所有 Service 实例
// repos: Repository 层聚合实例
// cache: 缓存服务
// suggester: 任务建议生成服务
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService, suggester suggest.SuggestionService) *Services {
	return &Services{
		User:  user.NewUserService(repos, cache),
		Group: group.NewGroupService(repos, cache),
		Task:  task.NewTaskService(repos, cache, suggester),
	}
}

package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"critter_crew_server/internal/dao/mysql/repository"
	myredis "critter_crew_server/internal/dao/redis"
	"critter_crew_server/internal/dto/request"
	"critter_crew_server/internal/dto/respond"
	"critter_crew_server/internal/infrastructure/suggest"
	"critter_crew_server/internal/model"
	"critter_crew_server/internal/service/mood"
	"critter_crew_server/pkg/errorx"
	"critter_crew_server/pkg/util/snowflake"
)

// taskService 任务业务逻辑实现
type taskService struct {
	repos     *repository.Repositories
	cache     myredis.AsyncCacheService
	suggester suggest.SuggestionService
}

// NewTaskService 构造函数，注入所有依赖
func NewTaskService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, suggester suggest.SuggestionService) *taskService {
	return &taskService{
		repos:     repos,
		cache:     cacheService,
		suggester: suggester,
	}
}

// toTaskRespond 把实体转为响应对象
func toTaskRespond(t *model.Task) *respond.TaskRespond {
	return &respond.TaskRespond{
		Uuid:        t.Uuid,
		GroupUuid:   t.GroupUuid,
		UserUuid:    t.UserUuid,
		Description: t.Description,
		Completed:   t.Completed,
	}
}

// checkMembership 校验用户确实是该小组成员
// 任务的读写都以成员身份为前提，非成员一律拒绝
func (t *taskService) checkMembership(groupId, userId string) error {
	member, err := t.repos.GroupMember.FindByUserUuid(userId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.ErrForbidden
		}
		zap.L().Error("查询成员关系失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if member.GroupUuid != groupId {
		return errorx.ErrForbidden
	}
	return nil
}

// invalidateGroupCache 同步清理小组详情缓存
// 必须在任务变动确认给调用方之前完成：异步清理会让紧随其后的
// 小组详情查询读到不含该次变动的旧心情值
func (t *taskService) invalidateGroupCache(groupId string) {
	if err := t.cache.Delete(context.Background(), "group_info_"+groupId); err != nil {
		zap.L().Error("清理小组详情缓存失败", zap.String("groupId", groupId), zap.Error(err))
	}
}

// GenerateTasks 调用文本生成服务产出建议任务并落库
// 生成和落库是两步：生成失败直接上抛依赖错误，不会写入半截数据
func (t *taskService) GenerateTasks(req request.GenerateTasksRequest, userId string) ([]respond.TaskRespond, error) {
	if err := t.checkMembership(req.GroupId, userId); err != nil {
		return nil, err
	}

	timeout := time.Second * 30
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	descriptions, err := t.suggester.SuggestTasks(ctx, req.Prompt)
	if err != nil {
		zap.L().Error("生成建议任务失败", zap.String("userId", userId), zap.Error(err))
		return nil, err
	}

	return t.CreateTasks(request.CreateTasksRequest{
		GroupId:      req.GroupId,
		Descriptions: descriptions,
	}, userId)
}

// CreateTasks 批量创建任务
// 插入和心情重算在同一事务内完成；空列表是无操作，
// 不触发重算，心情值保持不变
func (t *taskService) CreateTasks(req request.CreateTasksRequest, userId string) ([]respond.TaskRespond, error) {
	if err := t.checkMembership(req.GroupId, userId); err != nil {
		return nil, err
	}

	// 过滤空白描述
	descriptions := make([]string, 0, len(req.Descriptions))
	for _, d := range req.Descriptions {
		if d = strings.TrimSpace(d); d != "" {
			descriptions = append(descriptions, d)
		}
	}
	if len(descriptions) == 0 {
		return make([]respond.TaskRespond, 0), nil
	}

	tasks := make([]model.Task, 0, len(descriptions))
	for _, d := range descriptions {
		tasks = append(tasks, model.Task{
			Uuid:        fmt.Sprintf("T%s", snowflake.GenerateIDString()),
			GroupUuid:   req.GroupId,
			UserUuid:    userId,
			Description: d,
		})
	}

	err := t.repos.Transaction(func(txRepos *repository.Repositories) error {
		// 先锁组行：并发的任务变动事务在此串行，统计时读到的才是已提交的全量快照
		if _, err := txRepos.Group.FindByUuidForUpdate(req.GroupId); err != nil {
			return err
		}
		if err := txRepos.Task.CreateTasks(tasks); err != nil {
			return err
		}
		// 新任务默认未完成，会拉低完成率，在同一事务内重算
		_, err := mood.Recompute(txRepos, req.GroupId)
		return err
	})
	if err != nil {
		zap.L().Error("批量创建任务失败", zap.String("groupId", req.GroupId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	t.invalidateGroupCache(req.GroupId)

	taskListRsp := make([]respond.TaskRespond, 0, len(tasks))
	for i := range tasks {
		taskListRsp = append(taskListRsp, *toTaskRespond(&tasks[i]))
	}
	return taskListRsp, nil
}

// ToggleTask 切换任务完成状态
// 读任务、校验归属、写状态、重算心情在同一事务内完成，
// 归属校验失败时任务保持原值
func (t *taskService) ToggleTask(taskId, userId string) (*respond.TaskRespond, error) {
	var updated *model.Task
	err := t.repos.Transaction(func(txRepos *repository.Repositories) error {
		// 锁定读开场：普通读会在第一条语句固定 REPEATABLE READ 快照，
		// 之后的统计就看不到并发切换已提交的行了
		taskRecord, err := txRepos.Task.FindByUuidForUpdate(taskId)
		if err != nil {
			return err
		}
		// 只有归属成员本人可以切换，连同组成员也不行
		if taskRecord.UserUuid != userId {
			return errorx.ErrForbidden
		}
		// 组行锁把同组的并发切换串行化，统计读到的是已提交的全量快照；
		// 没有它，后提交者会把不含对方已确认切换的心情值写回去
		if _, err := txRepos.Group.FindByUuidForUpdate(taskRecord.GroupUuid); err != nil {
			return err
		}
		newCompleted := !taskRecord.Completed
		if err := txRepos.Task.UpdateCompleted(taskId, newCompleted); err != nil {
			return err
		}
		if _, err := mood.Recompute(txRepos, taskRecord.GroupUuid); err != nil {
			return err
		}
		taskRecord.Completed = newCompleted
		updated = taskRecord
		return nil
	})
	if err != nil {
		switch errorx.GetCode(err) {
		case errorx.CodeNotFound:
			return nil, errorx.New(errorx.CodeNotFound, "任务不存在")
		case errorx.CodeForbidden:
			return nil, err
		default:
			zap.L().Error("切换任务状态失败", zap.String("taskId", taskId), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}

	t.invalidateGroupCache(updated.GroupUuid)
	return toTaskRespond(updated), nil
}

// GetTaskList 获取某成员在小组内的任务列表
func (t *taskService) GetTaskList(groupId, userId string) ([]respond.TaskRespond, error) {
	if err := t.checkMembership(groupId, userId); err != nil {
		return nil, err
	}

	tasks, err := t.repos.Task.FindByGroupAndUser(groupId, userId)
	if err != nil {
		zap.L().Error("查询任务列表失败", zap.String("groupId", groupId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	taskListRsp := make([]respond.TaskRespond, 0, len(tasks))
	for i := range tasks {
		taskListRsp = append(taskListRsp, *toTaskRespond(&tasks[i]))
	}
	return taskListRsp, nil
}

package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"critter_crew_server/internal/dao/mysql/repository"
	"critter_crew_server/internal/dto/request"
	"critter_crew_server/internal/model"
	"critter_crew_server/pkg/constants"
	"critter_crew_server/pkg/errorx"
)

// stubCache 测试用缓存：读全部未命中，写全部成功，异步任务同步执行
type stubCache struct{}

func (stubCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
func (stubCache) Get(ctx context.Context, key string) (string, error)                 { return "", nil }
func (stubCache) Delete(ctx context.Context, key string) error                        { return nil }
func (stubCache) DeleteByPattern(ctx context.Context, pattern string) error           { return nil }
func (stubCache) SubmitTask(action func())                                            { action() }

// recordingCache 记录被删除的键，用来核对变动确认前的缓存清理
type recordingCache struct {
	stubCache
	mu      sync.Mutex
	deleted []string
}

func (r *recordingCache) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, key)
	return nil
}

func (r *recordingCache) deletedKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.deleted...)
}

// stubSuggester 测试用建议生成：返回固定列表或固定错误
type stubSuggester struct {
	tasks []string
	err   error
}

func (s stubSuggester) SuggestTasks(ctx context.Context, prompt string) ([]string, error) {
	return s.tasks, s.err
}

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.UserInfo{}, &model.GroupInfo{}, &model.GroupMember{}, &model.Task{}); err != nil {
		t.Fatalf("自动迁移失败: %v", err)
	}
	return repository.NewRepositories(db)
}

// seedGroup 直接通过仓储层搭好一个双人小组：owner 为创建者，mate 为普通成员
func seedGroup(t *testing.T, repos *repository.Repositories) (groupUuid, owner, mate, outsider string) {
	t.Helper()
	owner, mate, outsider = "Utest_owner", "Utest_mate", "Utest_outsider"
	for _, u := range []model.UserInfo{
		{Uuid: owner, Username: "owner", RawPassword: "password123"},
		{Uuid: mate, Username: "mate", RawPassword: "password123"},
		{Uuid: outsider, Username: "outsider", RawPassword: "password123"},
	} {
		user := u
		if err := repos.User.CreateUser(&user); err != nil {
			t.Fatalf("插入测试用户失败: %v", err)
		}
	}
	groupUuid = "Gtest_group"
	group := model.GroupInfo{
		Uuid:         groupUuid,
		Name:         "健身搭子",
		InviteCode:   "ABC234",
		OwnerId:      owner,
		MemberCnt:    2,
		CreatureMood: constants.NeutralMood,
	}
	if err := repos.Group.CreateGroup(&group); err != nil {
		t.Fatalf("插入测试小组失败: %v", err)
	}
	for _, m := range []model.GroupMember{
		{GroupUuid: groupUuid, UserUuid: owner, Role: 2},
		{GroupUuid: groupUuid, UserUuid: mate, Role: 1},
	} {
		member := m
		if err := repos.GroupMember.CreateGroupMember(&member); err != nil {
			t.Fatalf("插入测试成员失败: %v", err)
		}
	}
	return groupUuid, owner, mate, outsider
}

// groupMood 读取小组当前心情值
func groupMood(t *testing.T, repos *repository.Repositories, groupUuid string) int {
	t.Helper()
	g, err := repos.Group.FindByUuid(groupUuid)
	if err != nil {
		t.Fatalf("查询小组失败: %v", err)
	}
	return g.CreatureMood
}

func TestCreateTasks(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{})
	groupUuid, owner, _, _ := seedGroup(t, repos)

	rsp, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId:      groupUuid,
		Descriptions: []string{"晨跑 3 公里", "  做 20 个俯卧撑  ", "", "记录今日饮食"},
	}, owner)
	if err != nil {
		t.Fatalf("批量创建任务失败: %v", err)
	}
	// 空白描述被过滤，其余去除首尾空白
	if len(rsp) != 3 {
		t.Fatalf("创建任务数 = %d, 期望 3", len(rsp))
	}
	if rsp[1].Description != "做 20 个俯卧撑" {
		t.Errorf("任务描述未去除首尾空白: %q", rsp[1].Description)
	}
	for _, taskRsp := range rsp {
		if taskRsp.Completed {
			t.Errorf("新任务 %s 应为未完成", taskRsp.Uuid)
		}
		if taskRsp.Uuid == "" || taskRsp.Uuid[0] != 'T' {
			t.Errorf("任务 uuid 格式不正确: %q", taskRsp.Uuid)
		}
	}
	// 3 个任务全部未完成，完成率 0
	if mood := groupMood(t, repos, groupUuid); mood != 0 {
		t.Errorf("心情值 = %d, 期望 0", mood)
	}
}

func TestCreateTasksEmptyNoop(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{})
	groupUuid, owner, _, _ := seedGroup(t, repos)

	for _, descriptions := range [][]string{nil, {}, {"", "   "}} {
		rsp, err := svc.CreateTasks(request.CreateTasksRequest{
			GroupId:      groupUuid,
			Descriptions: descriptions,
		}, owner)
		if err != nil {
			t.Fatalf("空列表创建不应报错: %v", err)
		}
		if len(rsp) != 0 {
			t.Errorf("空列表创建应返回空结果, 实际 %d 条", len(rsp))
		}
	}
	// 无操作不触发心情重算，保持默认值
	if mood := groupMood(t, repos, groupUuid); mood != constants.NeutralMood {
		t.Errorf("心情值 = %d, 期望保持 %d", mood, constants.NeutralMood)
	}
}

func TestCreateTasksNonMember(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{})
	groupUuid, _, _, outsider := seedGroup(t, repos)

	_, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId:      groupUuid,
		Descriptions: []string{"偷偷加任务"},
	}, outsider)
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Errorf("非成员创建任务应被拒绝, 实际: %v", err)
	}
}

func TestToggleTaskMood(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{})
	groupUuid, owner, mate, _ := seedGroup(t, repos)

	// 两名成员各建 2 个任务，共 4 个
	ownerTasks, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId: groupUuid, Descriptions: []string{"晨跑 3 公里", "拉伸 10 分钟"},
	}, owner)
	if err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	if _, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId: groupUuid, Descriptions: []string{"游泳 1 公里", "早睡打卡"},
	}, mate); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}

	// 4 个任务完成 1 个，心情 = round(100*1/4) = 25
	rsp, err := svc.ToggleTask(ownerTasks[0].Uuid, owner)
	if err != nil {
		t.Fatalf("切换任务失败: %v", err)
	}
	if !rsp.Completed {
		t.Errorf("切换后任务应为已完成")
	}
	if mood := groupMood(t, repos, groupUuid); mood != 25 {
		t.Errorf("心情值 = %d, 期望 25", mood)
	}

	// 再切回去，心情回到 0
	rsp, err = svc.ToggleTask(ownerTasks[0].Uuid, owner)
	if err != nil {
		t.Fatalf("切换任务失败: %v", err)
	}
	if rsp.Completed {
		t.Errorf("二次切换后任务应为未完成")
	}
	if mood := groupMood(t, repos, groupUuid); mood != 0 {
		t.Errorf("心情值 = %d, 期望 0", mood)
	}
}

func TestConcurrentToggleConverge(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{})
	groupUuid, owner, mate, _ := seedGroup(t, repos)

	ownerTasks, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId: groupUuid, Descriptions: []string{"晨跑 3 公里"},
	}, owner)
	if err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	mateTasks, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId: groupUuid, Descriptions: []string{"游泳 1 公里"},
	}, mate)
	if err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}

	// 两名成员各自并发切换自己的任务
	toggles := []struct{ taskId, userId string }{
		{ownerTasks[0].Uuid, owner},
		{mateTasks[0].Uuid, mate},
	}
	var wg sync.WaitGroup
	errs := make(chan error, len(toggles))
	for _, tg := range toggles {
		wg.Add(1)
		go func(taskId, userId string) {
			defer wg.Done()
			if _, err := svc.ToggleTask(taskId, userId); err != nil {
				errs <- err
			}
		}(tg.taskId, tg.userId)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("并发切换失败: %v", err)
	}

	// 两次切换都已确认，落库的心情值必须同时包含两条已完成任务，
	// 不允许后提交者把漏算了对方切换的旧值写回去
	if mood := groupMood(t, repos, groupUuid); mood != 100 {
		t.Errorf("心情值 = %d, 期望 100", mood)
	}
}

func TestToggleTaskInvalidatesCacheBeforeAck(t *testing.T) {
	repos := newTestRepos(t)
	cache := &recordingCache{}
	svc := NewTaskService(repos, cache, stubSuggester{})
	groupUuid, owner, _, _ := seedGroup(t, repos)

	tasks, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId: groupUuid, Descriptions: []string{"晨跑 3 公里"},
	}, owner)
	if err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	createDeletes := len(cache.deletedKeys())
	if createDeletes == 0 {
		t.Fatalf("创建任务返回前未清理小组详情缓存")
	}

	if _, err := svc.ToggleTask(tasks[0].Uuid, owner); err != nil {
		t.Fatalf("切换任务失败: %v", err)
	}
	// 切换返回时缓存必须已清理完毕，之后的详情查询才不会读到旧心情值
	deleted := cache.deletedKeys()
	if len(deleted) != createDeletes+1 {
		t.Fatalf("切换任务返回前未清理小组详情缓存: %v", deleted)
	}
	if key := deleted[len(deleted)-1]; key != "group_info_"+groupUuid {
		t.Errorf("清理了错误的缓存键: %q", key)
	}
}

func TestToggleTaskRounding(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{})
	groupUuid, owner, _, _ := seedGroup(t, repos)

	tasks, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId: groupUuid, Descriptions: []string{"任务一", "任务二", "任务三"},
	}, owner)
	if err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}

	// 1/3 -> 33，2/3 -> 67，四舍五入
	if _, err := svc.ToggleTask(tasks[0].Uuid, owner); err != nil {
		t.Fatalf("切换任务失败: %v", err)
	}
	if mood := groupMood(t, repos, groupUuid); mood != 33 {
		t.Errorf("心情值 = %d, 期望 33", mood)
	}
	if _, err := svc.ToggleTask(tasks[1].Uuid, owner); err != nil {
		t.Fatalf("切换任务失败: %v", err)
	}
	if mood := groupMood(t, repos, groupUuid); mood != 67 {
		t.Errorf("心情值 = %d, 期望 67", mood)
	}
}

func TestToggleTaskForbidden(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{})
	groupUuid, owner, mate, outsider := seedGroup(t, repos)

	tasks, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId: groupUuid, Descriptions: []string{"晨跑 3 公里"},
	}, owner)
	if err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}

	// 同组成员和组外用户都不能切换别人的任务
	for _, intruder := range []string{mate, outsider} {
		if _, err := svc.ToggleTask(tasks[0].Uuid, intruder); errorx.GetCode(err) != errorx.CodeForbidden {
			t.Errorf("用户 %s 切换他人任务应被拒绝, 实际: %v", intruder, err)
		}
	}
	// 被拒绝的切换不应改变任务状态和心情值
	taskRecord, err := repos.Task.FindByUuid(tasks[0].Uuid)
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	if taskRecord.Completed {
		t.Errorf("被拒绝的切换改变了任务状态")
	}
	if mood := groupMood(t, repos, groupUuid); mood != 0 {
		t.Errorf("被拒绝的切换改变了心情值: %d", mood)
	}
}

func TestToggleTaskNotFound(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{})
	_, owner, _, _ := seedGroup(t, repos)

	if _, err := svc.ToggleTask("T_not_exist", owner); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("不存在的任务应返回未找到错误, 实际: %v", err)
	}
}

func TestGetTaskList(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{})
	groupUuid, owner, mate, outsider := seedGroup(t, repos)

	descriptions := []string{"晨跑 3 公里", "拉伸 10 分钟", "早睡打卡"}
	if _, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId: groupUuid, Descriptions: descriptions,
	}, owner); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	if _, err := svc.CreateTasks(request.CreateTasksRequest{
		GroupId: groupUuid, Descriptions: []string{"游泳 1 公里"},
	}, mate); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}

	// 只返回本人的任务，按创建先后排序
	list, err := svc.GetTaskList(groupUuid, owner)
	if err != nil {
		t.Fatalf("查询任务列表失败: %v", err)
	}
	if len(list) != len(descriptions) {
		t.Fatalf("任务数 = %d, 期望 %d", len(list), len(descriptions))
	}
	for i, taskRsp := range list {
		if taskRsp.Description != descriptions[i] {
			t.Errorf("任务顺序不正确: 第 %d 条 = %q", i, taskRsp.Description)
		}
		if taskRsp.UserUuid != owner {
			t.Errorf("混入了他人的任务: %+v", taskRsp)
		}
	}

	if _, err := svc.GetTaskList(groupUuid, outsider); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Errorf("非成员查询任务列表应被拒绝, 实际: %v", err)
	}
}

func TestGenerateTasks(t *testing.T) {
	repos := newTestRepos(t)
	suggested := []string{"给朋友打个电话", "整理书桌", "散步 20 分钟"}
	svc := NewTaskService(repos, stubCache{}, stubSuggester{tasks: suggested})
	groupUuid, owner, _, _ := seedGroup(t, repos)

	rsp, err := svc.GenerateTasks(request.GenerateTasksRequest{
		GroupId: groupUuid,
		Prompt:  "最近为工作焦虑",
	}, owner)
	if err != nil {
		t.Fatalf("生成任务失败: %v", err)
	}
	if len(rsp) != len(suggested) {
		t.Fatalf("生成任务数 = %d, 期望 %d", len(rsp), len(suggested))
	}
	// 生成的任务已经落库
	persisted, err := repos.Task.FindByGroupAndUser(groupUuid, owner)
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	if len(persisted) != len(suggested) {
		t.Errorf("落库任务数 = %d, 期望 %d", len(persisted), len(suggested))
	}
}

func TestGenerateTasksDependencyError(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewTaskService(repos, stubCache{}, stubSuggester{
		err: errorx.New(errorx.CodeDependency, "任务建议生成服务不可用"),
	})
	groupUuid, owner, _, _ := seedGroup(t, repos)

	_, err := svc.GenerateTasks(request.GenerateTasksRequest{
		GroupId: groupUuid,
		Prompt:  "最近为工作焦虑",
	}, owner)
	if errorx.GetCode(err) != errorx.CodeDependency {
		t.Errorf("生成服务失败应上抛依赖错误, 实际: %v", err)
	}
	// 失败的生成不应写入任何任务
	persisted, err := repos.Task.FindByGroupAndUser(groupUuid, owner)
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	if len(persisted) != 0 {
		t.Errorf("失败的生成写入了 %d 条任务", len(persisted))
	}
}

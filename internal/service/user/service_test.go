package user

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"critter_crew_server/internal/dao/mysql/repository"
	"critter_crew_server/internal/dto/request"
	"critter_crew_server/internal/model"
	"critter_crew_server/pkg/errorx"
	"critter_crew_server/pkg/util/jwt"
)

// stubCache 测试用缓存：读全部未命中，写全部成功，异步任务同步执行
type stubCache struct{}

func (stubCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
func (stubCache) Get(ctx context.Context, key string) (string, error)                 { return "", nil }
func (stubCache) Delete(ctx context.Context, key string) error                        { return nil }
func (stubCache) DeleteByPattern(ctx context.Context, pattern string) error           { return nil }
func (stubCache) SubmitTask(action func())                                            { action() }

func newTestService(t *testing.T) *userService {
	t.Helper()
	jwt.Init("test-secret-at-least-32-chars-long!!", "critter_crew", 15, 168)
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
	if err := db.AutoMigrate(&model.UserInfo{}); err != nil {
		t.Fatalf("自动迁移失败: %v", err)
	}
	return NewUserService(repository.NewRepositories(db), stubCache{})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	registerRsp, err := svc.Register(request.RegisterRequest{
		Username: "alice",
		Password: "s3cret-pass",
		Avatar:   "https://example.com/a.png",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if registerRsp.Uuid == "" || registerRsp.Uuid[0] != 'U' {
		t.Errorf("用户 uuid 格式不正确: %q", registerRsp.Uuid)
	}
	if registerRsp.AccessToken == "" || registerRsp.RefreshToken == "" {
		t.Errorf("注册应签发双 Token: %+v", registerRsp)
	}
	// Access Token 应能解析回本人
	claims, err := jwt.ParseToken(registerRsp.AccessToken)
	if err != nil {
		t.Fatalf("解析 Access Token 失败: %v", err)
	}
	if claims.UserID != registerRsp.Uuid {
		t.Errorf("Token 归属 = %q, 期望 %q", claims.UserID, registerRsp.Uuid)
	}

	loginRsp, err := svc.Login(request.LoginRequest{Username: "alice", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if loginRsp.Uuid != registerRsp.Uuid {
		t.Errorf("登录返回了不同的用户: %q", loginRsp.Uuid)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Register(request.RegisterRequest{Username: "bob", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	_, err := svc.Register(request.RegisterRequest{Username: "bob", Password: "another-pass"})
	if errorx.GetCode(err) != errorx.CodeUserExist {
		t.Errorf("重复用户名应返回用户已存在错误, 实际: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Register(request.RegisterRequest{Username: "carol", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	_, err := svc.Login(request.LoginRequest{Username: "carol", Password: "wrong-pass"})
	if errorx.GetCode(err) != errorx.CodeInvalidPassword {
		t.Errorf("错误密码应返回密码错误, 实际: %v", err)
	}
}

func TestLoginUserNotExist(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(request.LoginRequest{Username: "nobody", Password: "whatever"})
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Errorf("未注册用户登录应返回用户不存在错误, 实际: %v", err)
	}
}

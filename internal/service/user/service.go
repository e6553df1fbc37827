package user

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"critter_crew_server/internal/dao/mysql/repository"
	myredis "critter_crew_server/internal/dao/redis"
	"critter_crew_server/internal/dto/request"
	"critter_crew_server/internal/dto/respond"
	"critter_crew_server/internal/model"
	"critter_crew_server/pkg/constants"
	"critter_crew_server/pkg/errorx"
	"critter_crew_server/pkg/util/jwt"
	"critter_crew_server/pkg/util/random"
)

// userService 用户业务逻辑实现
type userService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewUserService 构造函数，注入所有依赖
func NewUserService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *userService {
	return &userService{
		repos: repos,
		cache: cacheService,
	}
}

// issueTokens 签发双 Token 并把 Refresh Token ID 写入 Redis
// Redis 中只保留最新一次签发的 Token ID，旧的刷新令牌自然失效
func (u *userService) issueTokens(userUuid string) (accessToken, refreshToken string, err error) {
	accessToken, err = jwt.GenerateAccessToken(userUuid)
	if err != nil {
		return "", "", err
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(userUuid)
	if err != nil {
		return "", "", err
	}
	err = u.cache.Set(context.Background(), "user_token:"+userUuid, tokenID,
		time.Hour*constants.REFRESH_TOKEN_EXPIRY_HOURS)
	if err != nil {
		// Redis 写失败不阻断登录，只是刷新令牌校验会退化
		zap.L().Error("写入刷新令牌状态失败", zap.String("userUuid", userUuid), zap.Error(err))
	}
	return accessToken, refreshToken, nil
}

// Register 用户注册
// 用户名唯一性以插入为准，撞唯一索引即重复注册
func (u *userService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	newUser := model.UserInfo{
		Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Username:    req.Username,
		Avatar:      req.Avatar,
		RawPassword: req.Password,
	}
	if err := u.repos.User.CreateUser(&newUser); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errorx.New(errorx.CodeUserExist, "用户名已被注册")
		}
		zap.L().Error("创建用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	accessToken, refreshToken, err := u.issueTokens(newUser.Uuid)
	if err != nil {
		zap.L().Error("签发令牌失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.RegisterRespond{
		Uuid:         newUser.Uuid,
		Username:     newUser.Username,
		Avatar:       newUser.Avatar,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login 密码登录
func (u *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	userRecord, err := u.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("查询用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !userRecord.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}

	accessToken, refreshToken, err := u.issueTokens(userRecord.Uuid)
	if err != nil {
		zap.L().Error("签发令牌失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.LoginRespond{
		Uuid:         userRecord.Uuid,
		Username:     userRecord.Username,
		Avatar:       userRecord.Avatar,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

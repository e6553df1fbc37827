package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"critter_crew_server/internal/config"
	dao "critter_crew_server/internal/dao/mysql"
	myredis "critter_crew_server/internal/dao/redis"
	"critter_crew_server/internal/handler"
	"critter_crew_server/internal/https_server"
	"critter_crew_server/internal/infrastructure/logger"
	"critter_crew_server/internal/infrastructure/suggest"
	"critter_crew_server/internal/service"
	"critter_crew_server/pkg/util/jwt"
	"critter_crew_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 和雪花算法节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.Issuer, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()
	zap.L().Info("JWT 与 ID 生成器初始化成功")

	// 6. 初始化任务建议生成服务（未配置 ApiKey 时为本地 Mock）
	suggester := suggest.Init()
	zap.L().Info("任务建议生成服务初始化成功")

	// 7. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译器初始化失败", zap.Error(err))
	}

	// 8. 依赖注入：Repositories -> Services -> Handlers -> Router
	services := service.NewServices(repos, myredis.GetCacheService(), suggester)
	handlers := handler.NewHandlers(services)
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 9. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("服务启动成功", zap.String("host", host), zap.Int("port", port))

	// 10. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("服务正在退出...")
	_ = zap.L().Sync()
}

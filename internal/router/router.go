// Package router 提供 HTTP 路由注册
// 本文件定义路由管理器，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"critter_crew_server/internal/handler"
	"critter_crew_server/internal/infrastructure/middleware"
)

// Router 路由管理器
// 持有 Handler 聚合实例，按模块注册路由
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 注册/登录为公开路由，小组和任务路由需要携带 Access Token
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	public := r.Group("/")
	rt.RegisterUserRoutes(public)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuth())
	rt.RegisterGroupRoutes(authed)
	rt.RegisterTaskRoutes(authed)
}

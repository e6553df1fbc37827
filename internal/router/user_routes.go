// Package router 提供 HTTP 路由注册
// 本文件定义用户相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由（公开，无需认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.POST("/register", rt.handlers.User.Register) // 用户注册
		userGroup.POST("/login", rt.handlers.User.Login)       // 密码登录
	}
}

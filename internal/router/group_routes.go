// Package router 提供 HTTP 路由注册
// 本文件定义小组相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes 注册小组相关路由（需要认证）
// 包括小组创建、邀请码加入、详情和成员列表查询
func (rt *Router) RegisterGroupRoutes(rg *gin.RouterGroup) {
	groupGroup := rg.Group("/group")
	{
		groupGroup.POST("/createGroup", rt.handlers.Group.CreateGroup)              // 创建小组
		groupGroup.POST("/joinGroup", rt.handlers.Group.JoinGroup)                  // 通过邀请码加入
		groupGroup.GET("/getGroupInfo", rt.handlers.Group.GetGroupInfo)             // 获取小组详情
		groupGroup.GET("/getMyGroup", rt.handlers.Group.GetMyGroup)                 // 获取我所在的小组
		groupGroup.GET("/getGroupMemberList", rt.handlers.Group.GetGroupMemberList) // 获取成员列表
	}
}

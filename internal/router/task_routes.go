// Package router 提供 HTTP 路由注册
// 本文件定义任务相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterTaskRoutes 注册任务相关路由（需要认证）
// 包括任务生成、批量创建、状态切换和列表查询
func (rt *Router) RegisterTaskRoutes(rg *gin.RouterGroup) {
	taskGroup := rg.Group("/task")
	{
		taskGroup.POST("/generateTasks", rt.handlers.Task.GenerateTasks) // 生成建议任务并落库
		taskGroup.POST("/createTasks", rt.handlers.Task.CreateTasks)     // 批量创建任务
		taskGroup.POST("/toggleTask", rt.handlers.Task.ToggleTask)       // 切换任务完成状态
		taskGroup.GET("/getTaskList", rt.handlers.Task.GetTaskList)      // 获取成员任务列表
	}
}

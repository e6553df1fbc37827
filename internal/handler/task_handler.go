// Package handler 提供 HTTP 请求处理器
// 本文件处理任务相关的 API 请求
package handler

import (
	"critter_crew_server/internal/dto/request"
	"critter_crew_server/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler 任务请求处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建任务处理器实例
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// GenerateTasks 根据用户输入生成建议任务并落库
// POST /task/generateTasks
// 请求体: request.GenerateTasksRequest
// 响应: []respond.TaskRespond
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	var req request.GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.taskSvc.GenerateTasks(req, currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreateTasks 批量创建任务
// POST /task/createTasks
// 请求体: request.CreateTasksRequest
// 响应: []respond.TaskRespond
func (h *TaskHandler) CreateTasks(c *gin.Context) {
	var req request.CreateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.taskSvc.CreateTasks(req, currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ToggleTask 切换任务完成状态
// POST /task/toggleTask
// 请求体: request.ToggleTaskRequest
// 响应: respond.TaskRespond
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	var req request.ToggleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.taskSvc.ToggleTask(req.TaskId, currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetTaskList 获取某成员在小组内的任务列表
// GET /task/getTaskList?groupId=xxx
// 查询参数: request.GetTaskListRequest
// 响应: []respond.TaskRespond
func (h *TaskHandler) GetTaskList(c *gin.Context) {
	var req request.GetTaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.taskSvc.GetTaskList(req.GroupId, currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

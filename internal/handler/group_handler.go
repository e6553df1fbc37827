// Package handler 提供 HTTP 请求处理器
// 本文件处理小组相关的 API 请求
package handler

import (
	"critter_crew_server/internal/dto/request"
	"critter_crew_server/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler 小组请求处理器
// 通过构造函数注入 GroupService
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建小组处理器实例
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// CreateGroup 创建小组
// POST /group/createGroup
// 请求体: request.CreateGroupRequest，创建者取 Token 身份
// 响应: respond.GetGroupInfoRespond
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.CreateGroup(req, currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// JoinGroup 通过邀请码加入小组
// POST /group/joinGroup
// 请求体: request.JoinGroupRequest，加入者取 Token 身份
// 响应: respond.GetGroupInfoRespond
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	var req request.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.JoinGroupByCode(req.Code, currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupInfo 获取小组详情
// GET /group/getGroupInfo?groupId=xxx
// 查询参数: request.GetGroupInfoRequest
// 响应: respond.GetGroupInfoRespond
func (h *GroupHandler) GetGroupInfo(c *gin.Context) {
	var req request.GetGroupInfoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.GetGroupInfo(req.GroupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMyGroup 获取当前用户所在的小组
// GET /group/getMyGroup
// 身份取 Token，无查询参数
// 响应: respond.GetGroupInfoRespond（未加入任何小组时 data 为 null）
func (h *GroupHandler) GetMyGroup(c *gin.Context) {
	data, err := h.groupSvc.GetMyGroup(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupMemberList 获取小组成员列表
// GET /group/getGroupMemberList?groupId=xxx
// 查询参数: request.GetGroupMemberListRequest
// 响应: []respond.GetGroupMemberListRespond
func (h *GroupHandler) GetGroupMemberList(c *gin.Context) {
	var req request.GetGroupMemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.GetGroupMemberList(req.GroupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

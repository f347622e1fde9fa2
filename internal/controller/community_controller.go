package controller

import (
	"madrasa_backend/internal/service"
	"madrasa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	Community *service.CommunityService
}

func NewCommunityController(community *service.CommunityService) *CommunityController {
	return &CommunityController{Community: community}
}

// CreateGroup godoc
// @Summary Create a study group
// @Tags community
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateGroupRequest true "Group fields"
// @Success 201 {object} util.Response{data=model.StudyGroup}
// @Router /api/groups [post]
func (c *CommunityController) CreateGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group, err := c.Community.CreateGroup(claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, group)
}

// ListGroups godoc
// @Summary Browse study groups
// @Tags community
// @Produce  json
// @Param   courseId query string false "Filter by course"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/groups [get]
func (c *CommunityController) ListGroups(ctx *gin.Context) {
	page := util.ParsePositiveInt(ctx.Query("page"), 1)
	limit := util.ParsePositiveInt(ctx.Query("limit"), 20)

	groups, total, err := c.Community.ListGroups(ctx.Query("courseId"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: groups, Total: total, Page: page, Limit: limit})
}

// MyGroups godoc
// @Summary Groups I belong to
// @Tags community
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.StudyGroup}
// @Router /api/groups/mine [get]
func (c *CommunityController) MyGroups(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groups, err := c.Community.MyGroups(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// JoinGroup godoc
// @Summary Join a study group
// @Tags community
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Group id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Full or already a member"
// @Router /api/groups/{id}/join [post]
func (c *CommunityController) JoinGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Community.JoinGroup(ctx.Param("id"), claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// LeaveGroup godoc
// @Summary Leave a study group
// @Tags community
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Group id"
// @Success 200 {object} util.Response
// @Router /api/groups/{id}/leave [post]
func (c *CommunityController) LeaveGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Community.LeaveGroup(ctx.Param("id"), claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

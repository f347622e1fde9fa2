package controller

import (
	"madrasa_backend/internal/service"
	"madrasa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// LearningController exposes enrollment, progress tracking and the video
// player session.
type LearningController struct {
	Curriculum *service.CurriculumService
	Playback   *service.PlaybackService
}

func NewLearningController(curriculum *service.CurriculumService, playback *service.PlaybackService) *LearningController {
	return &LearningController{Curriculum: curriculum, Playback: playback}
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 400 {object} util.Response "Already enrolled"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id}/enroll [post]
func (c *LearningController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollment, err := c.Curriculum.Enroll(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// Unenroll godoc
// @Summary Leave a course
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/enroll [delete]
func (c *LearningController) Unenroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Curriculum.Unenroll(claims.UserID, ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Dashboard godoc
// @Summary My enrolled courses with progress
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.DashboardEntry}
// @Router /api/dashboard [get]
func (c *LearningController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.Curriculum.Dashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// GetProgress godoc
// @Summary Progress snapshot for a course
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response{data=service.ProgressView}
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id}/progress [get]
func (c *LearningController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Curriculum.GetProgress(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// MarkCompleteRequest names a lesson.
type MarkCompleteRequest struct {
	SectionID    string `json:"sectionId" binding:"required"`
	SubsectionID string `json:"subsectionId" binding:"required"`
}

// MarkComplete godoc
// @Summary Mark a lesson complete
// @Description Idempotent; completion never reverses
// @Tags learning
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Param   body body MarkCompleteRequest true "Lesson address"
// @Success 200 {object} util.Response{data=service.ProgressView}
// @Failure 404 {object} util.Response "Unknown lesson"
// @Router /api/courses/{id}/progress/complete [post]
func (c *LearningController) MarkComplete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req MarkCompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.Curriculum.MarkComplete(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.SectionID, req.SubsectionID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Roster godoc
// @Summary Per-student progress for a course (instructor)
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response{data=[]model.UserProgress}
// @Failure 403 {object} util.Response "Not the course owner"
// @Router /api/courses/{id}/roster [get]
func (c *LearningController) Roster(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.Curriculum.CourseRoster(ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// OpenPlayer godoc
// @Summary Open the video player for a course
// @Description Starts at the first incomplete lesson, or the trailer when done
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response{data=service.PlayerView}
// @Router /api/courses/{id}/player [post]
func (c *LearningController) OpenPlayer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Playback.OpenSession(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// PollPlayer godoc
// @Summary Poll the player state
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response{data=service.PlayerView}
// @Router /api/courses/{id}/player [get]
func (c *LearningController) PollPlayer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Playback.Poll(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// SelectLessonRequest names the lesson to play.
type SelectLessonRequest struct {
	SectionID    string `json:"sectionId" binding:"required"`
	SubsectionID string `json:"subsectionId" binding:"required"`
}

// SelectLesson godoc
// @Summary Play a specific lesson
// @Tags learning
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Param   body body SelectLessonRequest true "Lesson address"
// @Success 200 {object} util.Response{data=service.PlayerView}
// @Failure 404 {object} util.Response "Unknown lesson"
// @Router /api/courses/{id}/player/select [post]
func (c *LearningController) SelectLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SelectLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.Playback.Select(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.SectionID, req.SubsectionID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// PreviewPlayer godoc
// @Summary Play the course trailer
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response{data=service.PlayerView}
// @Router /api/courses/{id}/player/preview [post]
func (c *LearningController) PreviewPlayer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Playback.Preview(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// CompleteCurrent godoc
// @Summary Mark the playing lesson complete
// @Description No-op while the trailer is playing
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response{data=service.ProgressView}
// @Router /api/courses/{id}/player/complete [post]
func (c *LearningController) CompleteCurrent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Playback.CompleteCurrent(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ClosePlayer godoc
// @Summary Close the player session
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/player [delete]
func (c *LearningController) ClosePlayer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	c.Playback.CloseSession(claims.UserID, ctx.Param("id"))
	util.Success(ctx, nil)
}

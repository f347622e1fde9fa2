package controller

import (
	"madrasa_backend/internal/service"
	"madrasa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LiveController struct {
	Live *service.LiveService
}

func NewLiveController(live *service.LiveService) *LiveController {
	return &LiveController{Live: live}
}

// CreatePoll godoc
// @Summary Open a live poll (instructor)
// @Tags live
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Param   body body service.CreatePollRequest true "Question and options"
// @Success 201 {object} util.Response{data=model.Poll}
// @Router /api/courses/{id}/polls [post]
func (c *LiveController) CreatePoll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreatePollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	poll, err := c.Live.CreatePoll(ctx.Param("id"), claims.UserID, claims.Role, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, poll)
}

// ListPolls godoc
// @Summary Polls for a course
// @Tags live
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response{data=[]model.Poll}
// @Router /api/courses/{id}/polls [get]
func (c *LiveController) ListPolls(ctx *gin.Context) {
	polls, err := c.Live.ListPolls(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, polls)
}

// ClosePoll godoc
// @Summary Close a poll (instructor)
// @Tags live
// @Produce  json
// @Security BearerAuth
// @Param   pollId path string true "Poll id"
// @Success 200 {object} util.Response
// @Router /api/polls/{pollId}/close [post]
func (c *LiveController) ClosePoll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Live.ClosePoll(ctx.Param("pollId"), claims.UserID, claims.Role); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// VoteRequest names the chosen option.
type VoteRequest struct {
	OptionID uint `json:"optionId" binding:"required"`
}

// Vote godoc
// @Summary Vote in a poll
// @Tags live
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   pollId path string true "Poll id"
// @Param   body body VoteRequest true "Option"
// @Success 200 {object} util.Response{data=model.Poll}
// @Failure 400 {object} util.Response "Closed or already voted"
// @Router /api/polls/{pollId}/vote [post]
func (c *LiveController) Vote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	poll, err := c.Live.Vote(ctx.Param("pollId"), req.OptionID, claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, poll)
}

// AskQuestion godoc
// @Summary Ask a live question
// @Tags live
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Param   body body service.AskQuestionRequest true "Question text"
// @Success 201 {object} util.Response{data=model.LiveQuestion}
// @Router /api/courses/{id}/questions [post]
func (c *LiveController) AskQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AskQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Live.AskQuestion(ctx.Param("id"), claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// ListQuestions godoc
// @Summary Live questions, most upvoted first
// @Tags live
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response{data=[]model.LiveQuestion}
// @Router /api/courses/{id}/questions [get]
func (c *LiveController) ListQuestions(ctx *gin.Context) {
	questions, err := c.Live.ListQuestions(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// UpvoteQuestion godoc
// @Summary Upvote a live question
// @Tags live
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Question id"
// @Success 200 {object} util.Response
// @Router /api/questions/{id}/upvote [post]
func (c *LiveController) UpvoteQuestion(ctx *gin.Context) {
	if err := c.Live.UpvoteQuestion(util.ParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AnswerQuestionRequest carries the instructor's answer.
type AnswerQuestionRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// AnswerQuestion godoc
// @Summary Answer a live question (instructor)
// @Tags live
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Question id"
// @Param   body body AnswerQuestionRequest true "Answer text"
// @Success 200 {object} util.Response{data=model.LiveQuestion}
// @Router /api/questions/{id}/answer [post]
func (c *LiveController) AnswerQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Live.AnswerQuestion(util.ParseUint(ctx.Param("id")), claims.UserID, claims.Role, req.Answer)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

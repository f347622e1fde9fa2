package controller

import (
	"madrasa_backend/internal/model"
	"madrasa_backend/internal/service"
	"madrasa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Quiz *service.QuizService
}

func NewQuizController(quiz *service.QuizService) *QuizController {
	return &QuizController{Quiz: quiz}
}

// GetSectionQuiz godoc
// @Summary Section quiz without answer key
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   sectionId path string true "Section id"
// @Success 200 {object} util.Response{data=service.StudentQuiz}
// @Failure 404 {object} util.Response "No quiz for this section"
// @Router /api/sections/{sectionId}/quiz [get]
func (c *QuizController) GetSectionQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quiz, err := c.Quiz.GetQuizForStudent(claims.UserID, ctx.Param("sectionId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Submit godoc
// @Summary Submit quiz answers
// @Description Grades the whole answer vector at once; a passing score completes the section
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   quizId path string true "Quiz id"
// @Param   body body service.SubmitQuizRequest true "Answer vector"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Failure 400 {object} util.Response "Answer count mismatch or attempt limit reached"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/{quizId}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Quiz.SubmitQuiz(ctx.Request.Context(), claims.UserID, ctx.Param("quizId"), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// AttemptsResponse pairs the attempt history with the best score so far
// (-1 when no attempt exists).
type AttemptsResponse struct {
	Attempts  []model.QuizAttemptRecord `json:"attempts"`
	BestScore int                       `json:"bestScore"`
}

// Attempts godoc
// @Summary My attempts for a quiz
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   quizId path string true "Quiz id"
// @Success 200 {object} util.Response{data=AttemptsResponse}
// @Router /api/quizzes/{quizId}/attempts [get]
func (c *QuizController) Attempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := ctx.Param("quizId")
	attempts, err := c.Quiz.ListAttempts(claims.UserID, quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	best, err := c.Quiz.BestScore(claims.UserID, quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, AttemptsResponse{Attempts: attempts, BestScore: best})
}

// CreateQuiz godoc
// @Summary Attach a quiz to a section (instructor)
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   sectionId path string true "Section id"
// @Param   body body service.CreateQuizRequest true "Quiz with questions"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response "Not the course owner"
// @Router /api/sections/{sectionId}/quiz [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Quiz.CreateQuiz(ctx.Param("sectionId"), claims.UserID, claims.Role, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// AddQuestion godoc
// @Summary Add a question to a quiz (instructor)
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   quizId path string true "Quiz id"
// @Param   body body service.QuizQuestionRequest true "Question fields"
// @Success 201 {object} util.Response{data=model.QuizQuestion}
// @Router /api/quizzes/{quizId}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Quiz.AddQuestion(ctx.Param("quizId"), claims.UserID, claims.Role, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Edit a quiz question (instructor)
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Question id"
// @Param   body body service.QuizQuestionRequest true "Question fields"
// @Success 200 {object} util.Response{data=model.QuizQuestion}
// @Router /api/quiz-questions/{id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Quiz.UpdateQuestion(util.ParseUint(ctx.Param("id")), claims.UserID, claims.Role, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a quiz question (instructor)
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Question id"
// @Success 200 {object} util.Response
// @Router /api/quiz-questions/{id} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Quiz.DeleteQuestion(util.ParseUint(ctx.Param("id")), claims.UserID, claims.Role); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteQuiz godoc
// @Summary Delete a quiz (instructor)
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Param   quizId path string true "Quiz id"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{quizId} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Quiz.DeleteQuiz(ctx.Param("quizId"), claims.UserID, claims.Role); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

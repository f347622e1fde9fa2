package controller

import (
	"errors"

	"madrasa_backend/internal/model"
	"madrasa_backend/internal/repository"
	"madrasa_backend/internal/service"
	"madrasa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Content *service.ContentService
}

func NewCourseController(content *service.ContentService) *CourseController {
	return &CourseController{Content: content}
}

// Categories godoc
// @Summary List catalog categories
// @Tags courses
// @Produce  json
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/courses/categories [get]
func (c *CourseController) Categories(ctx *gin.Context) {
	util.Success(ctx, c.Content.Categories())
}

// List godoc
// @Summary Browse the course catalog
// @Tags courses
// @Produce  json
// @Param   category query string false "Filter by category"
// @Param   level query string false "Filter by level"
// @Param   search query string false "Search title and description"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(12)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page := util.ParsePositiveInt(ctx.Query("page"), 1)
	limit := util.ParsePositiveInt(ctx.Query("limit"), 12)

	filter := repository.CourseFilter{
		Category:      ctx.Query("category"),
		Level:         ctx.Query("level"),
		Search:        ctx.Query("search"),
		PublishedOnly: true,
	}

	courses, total, err := c.Content.ListCourses(filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Course detail with full curriculum
// @Tags courses
// @Produce  json
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "Not found"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.Content.GetCourse(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, course)
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateCourseRequest true "Course fields"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "Invalid payload"
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Content.CreateCourse(claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Param   body body service.UpdateCourseRequest true "Changed fields"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response "Not the course owner"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Content.UpdateCourse(ctx.Param("id"), claims.UserID, claims.Role, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary Delete a course
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Not the course owner"
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Content.DeleteCourse(ctx.Param("id"), claims.UserID, claims.Role); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddSection godoc
// @Summary Add a section to a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Param   body body service.SectionRequest true "Section fields"
// @Success 201 {object} util.Response{data=model.Section}
// @Router /api/courses/{id}/sections [post]
func (c *CourseController) AddSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.Content.AddSection(ctx.Param("id"), claims.UserID, claims.Role, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, section)
}

// UpdateSection godoc
// @Summary Update a section
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   sectionId path string true "Section id"
// @Param   body body service.SectionRequest true "Section fields"
// @Success 200 {object} util.Response{data=model.Section}
// @Router /api/sections/{sectionId} [put]
func (c *CourseController) UpdateSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.Content.UpdateSection(ctx.Param("sectionId"), claims.UserID, claims.Role, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, section)
}

// DeleteSection godoc
// @Summary Delete a section
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   sectionId path string true "Section id"
// @Success 200 {object} util.Response
// @Router /api/sections/{sectionId} [delete]
func (c *CourseController) DeleteSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Content.DeleteSection(ctx.Param("sectionId"), claims.UserID, claims.Role); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddSubsection godoc
// @Summary Add a lesson to a section
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   sectionId path string true "Section id"
// @Param   body body service.SubsectionRequest true "Lesson fields"
// @Success 201 {object} util.Response{data=model.Subsection}
// @Router /api/sections/{sectionId}/subsections [post]
func (c *CourseController) AddSubsection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubsectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Content.AddSubsection(ctx.Param("sectionId"), claims.UserID, claims.Role, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// UpdateSubsection godoc
// @Summary Update a lesson
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   subsectionId path string true "Lesson id"
// @Param   body body service.SubsectionRequest true "Lesson fields"
// @Success 200 {object} util.Response{data=model.Subsection}
// @Router /api/subsections/{subsectionId} [put]
func (c *CourseController) UpdateSubsection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubsectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Content.UpdateSubsection(ctx.Param("subsectionId"), claims.UserID, claims.Role, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// DeleteSubsection godoc
// @Summary Delete a lesson
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   subsectionId path string true "Lesson id"
// @Success 200 {object} util.Response
// @Router /api/subsections/{subsectionId} [delete]
func (c *CourseController) DeleteSubsection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Content.DeleteSubsection(ctx.Param("subsectionId"), claims.UserID, claims.Role); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadResource godoc
// @Summary Upload a study material to a section
// @Tags courses
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   sectionId path string true "Section id"
// @Param   file formData file true "Resource file"
// @Param   title formData string true "Display title"
// @Param   type formData string true "pdf | image | video | document"
// @Success 201 {object} util.Response{data=model.Resource}
// @Router /api/sections/{sectionId}/resources [post]
func (c *CourseController) UploadResource(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	title := ctx.PostForm("title")
	if title == "" {
		title = header.Filename
	}
	resType := model.ResourceType(ctx.PostForm("type"))

	resource, err := c.Content.UploadResource(ctx.Request.Context(), ctx.Param("sectionId"), claims.UserID, claims.Role, header, title, resType)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, resource)
}

// DeleteResource godoc
// @Summary Delete a study material
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Resource id"
// @Success 200 {object} util.Response
// @Router /api/resources/{id} [delete]
func (c *CourseController) DeleteResource(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Content.DeleteResource(util.ParseUint(ctx.Param("id")), claims.UserID, claims.Role); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListReviews godoc
// @Summary Course reviews
// @Tags courses
// @Produce  json
// @Param   id path string true "Course id"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=object}
// @Router /api/courses/{id}/reviews [get]
func (c *CourseController) ListReviews(ctx *gin.Context) {
	page := util.ParsePositiveInt(ctx.Query("page"), 1)
	limit := util.ParsePositiveInt(ctx.Query("limit"), 10)

	reviews, total, avg, err := c.Content.ListReviews(ctx.Param("id"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"reviews":       util.PageResponse{List: reviews, Total: total, Page: page, Limit: limit},
		"averageRating": avg,
	})
}

// AddReview godoc
// @Summary Review a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Course id"
// @Param   body body service.ReviewRequest true "Rating and comment"
// @Success 201 {object} util.Response{data=model.Review}
// @Failure 400 {object} util.Response "Invalid rating or not enrolled"
// @Router /api/courses/{id}/reviews [post]
func (c *CourseController) AddReview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.Content.AddReview(claims.UserID, ctx.Param("id"), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, review)
}

// respondServiceError maps service sentinels to HTTP statuses.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrSectionNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrGroupNotFound),
		errors.Is(err, util.ErrPollNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCertificateNotFound),
		errors.Is(err, model.ErrSubsectionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrNotEnrolled),
		errors.Is(err, util.ErrInvalidRating),
		errors.Is(err, util.ErrAlreadyReviewed),
		errors.Is(err, util.ErrAnswerCountMismatch),
		errors.Is(err, util.ErrAttemptLimitReached),
		errors.Is(err, util.ErrPollClosed),
		errors.Is(err, util.ErrAlreadyVoted),
		errors.Is(err, util.ErrGroupFull),
		errors.Is(err, util.ErrAlreadyMember),
		errors.Is(err, util.ErrNotMember),
		errors.Is(err, model.ErrNoQuestions),
		errors.Is(err, model.ErrOptionIndex):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

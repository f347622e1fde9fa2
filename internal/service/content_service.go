package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"madrasa_backend/internal/model"
	"madrasa_backend/internal/repository"
	"madrasa_backend/internal/util"
	"madrasa_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentService owns the course catalog and instructor authoring.
type ContentService struct {
	CourseRepo     *repository.CourseRepository
	ReviewRepo     *repository.ReviewRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Storage        *StorageService
}

func NewContentService(
	courseRepo *repository.CourseRepository,
	reviewRepo *repository.ReviewRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	storage *StorageService,
) *ContentService {
	return &ContentService{
		CourseRepo:     courseRepo,
		ReviewRepo:     reviewRepo,
		EnrollmentRepo: enrollmentRepo,
		Storage:        storage,
	}
}

// CourseSummary is the catalog card shape.
type CourseSummary struct {
	model.Course
	AverageRating float64 `json:"averageRating"`
	EnrolledCount int64   `json:"enrolledCount"`
}

func (s *ContentService) Categories() []string {
	return model.CourseCategories
}

func (s *ContentService) ListCourses(filter repository.CourseFilter, page, limit int) ([]CourseSummary, int64, error) {
	courses, total, err := s.CourseRepo.List(filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		summary := CourseSummary{Course: course}
		if avg, err := s.ReviewRepo.AverageRating(course.ID); err == nil {
			summary.AverageRating = avg
		}
		if count, err := s.EnrollmentRepo.CountByCourse(course.ID); err == nil {
			summary.EnrolledCount = count
		}
		summaries = append(summaries, summary)
	}
	return summaries, total, nil
}

func (s *ContentService) GetCourse(id string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

type CreateCourseRequest struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description"`
	Category        string            `json:"category" binding:"required"`
	Level           model.CourseLevel `json:"level"`
	Language        string            `json:"language"`
	Price           float64           `json:"price"`
	PreviewVideoURL string            `json:"previewVideoUrl"`
	Tags            []string          `json:"tags"`
}

func (s *ContentService) CreateCourse(instructorID uint, req *CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:           req.Title,
		Slug:            slugify(req.Title),
		Description:     req.Description,
		InstructorID:    instructorID,
		Category:        req.Category,
		Level:           req.Level,
		Language:        req.Language,
		Price:           req.Price,
		PreviewVideoURL: req.PreviewVideoURL,
		Tags:            req.Tags,
	}
	if course.Level == "" {
		course.Level = model.Beginner
	}
	if course.Language == "" {
		course.Language = "English"
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// requireOwnership checks that the acting user authored the course; admins
// bypass the check.
func (s *ContentService) requireOwnership(courseID string, userID uint, role model.UserRole) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if role != model.Admin && course.InstructorID != userID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

type UpdateCourseRequest struct {
	Title           *string            `json:"title"`
	Description     *string            `json:"description"`
	Category        *string            `json:"category"`
	Level           *model.CourseLevel `json:"level"`
	Language        *string            `json:"language"`
	Price           *float64           `json:"price"`
	PreviewVideoURL *string            `json:"previewVideoUrl"`
	Tags            []string           `json:"tags"`
	Published       *bool              `json:"published"`
}

func (s *ContentService) UpdateCourse(courseID string, userID uint, role model.UserRole, req *UpdateCourseRequest) (*model.Course, error) {
	course, err := s.requireOwnership(courseID, userID, role)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
		course.Slug = slugify(*req.Title)
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Language != nil {
		course.Language = *req.Language
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.PreviewVideoURL != nil {
		course.PreviewVideoURL = *req.PreviewVideoURL
	}
	if req.Tags != nil {
		course.Tags = req.Tags
	}
	if req.Published != nil {
		course.Published = *req.Published
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *ContentService) DeleteCourse(courseID string, userID uint, role model.UserRole) error {
	if _, err := s.requireOwnership(courseID, userID, role); err != nil {
		return err
	}
	return s.CourseRepo.Delete(courseID)
}

type SectionRequest struct {
	Title    string `json:"title" binding:"required"`
	Order    int    `json:"order"`
	Duration string `json:"duration"`
	Summary  string `json:"summary"`
}

func (s *ContentService) AddSection(courseID string, userID uint, role model.UserRole, req *SectionRequest) (*model.Section, error) {
	if _, err := s.requireOwnership(courseID, userID, role); err != nil {
		return nil, err
	}

	section := &model.Section{
		CourseID: courseID,
		Title:    req.Title,
		Order:    req.Order,
		Duration: req.Duration,
		Summary:  req.Summary,
	}
	if err := s.CourseRepo.CreateSection(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *ContentService) UpdateSection(sectionID string, userID uint, role model.UserRole, req *SectionRequest) (*model.Section, error) {
	section, err := s.CourseRepo.FindSectionByID(sectionID)
	if err != nil {
		return nil, util.ErrSectionNotFound
	}
	if _, err := s.requireOwnership(section.CourseID, userID, role); err != nil {
		return nil, err
	}

	section.Title = req.Title
	section.Order = req.Order
	section.Duration = req.Duration
	section.Summary = req.Summary
	if err := s.CourseRepo.UpdateSection(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *ContentService) DeleteSection(sectionID string, userID uint, role model.UserRole) error {
	section, err := s.CourseRepo.FindSectionByID(sectionID)
	if err != nil {
		return util.ErrSectionNotFound
	}
	if _, err := s.requireOwnership(section.CourseID, userID, role); err != nil {
		return err
	}
	return s.CourseRepo.DeleteSection(sectionID)
}

type SubsectionRequest struct {
	Title           string `json:"title" binding:"required"`
	Order           int    `json:"order"`
	Duration        string `json:"duration"`
	VideoURL        string `json:"videoUrl"`
	IsPreview       bool   `json:"isPreview"`
	InstructorNotes string `json:"instructorNotes"`
	Summary         string `json:"summary"`
}

func (s *ContentService) AddSubsection(sectionID string, userID uint, role model.UserRole, req *SubsectionRequest) (*model.Subsection, error) {
	section, err := s.CourseRepo.FindSectionByID(sectionID)
	if err != nil {
		return nil, util.ErrSectionNotFound
	}
	if _, err := s.requireOwnership(section.CourseID, userID, role); err != nil {
		return nil, err
	}

	sub := &model.Subsection{
		SectionID:       sectionID,
		Title:           req.Title,
		Order:           req.Order,
		Duration:        req.Duration,
		VideoURL:        req.VideoURL,
		IsPreview:       req.IsPreview,
		InstructorNotes: req.InstructorNotes,
		Summary:         req.Summary,
	}
	if err := s.CourseRepo.CreateSubsection(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *ContentService) UpdateSubsection(subsectionID string, userID uint, role model.UserRole, req *SubsectionRequest) (*model.Subsection, error) {
	sub, err := s.CourseRepo.FindSubsectionByID(subsectionID)
	if err != nil {
		return nil, util.ErrSectionNotFound
	}
	section, err := s.CourseRepo.FindSectionByID(sub.SectionID)
	if err != nil {
		return nil, util.ErrSectionNotFound
	}
	if _, err := s.requireOwnership(section.CourseID, userID, role); err != nil {
		return nil, err
	}

	sub.Title = req.Title
	sub.Order = req.Order
	sub.Duration = req.Duration
	sub.VideoURL = req.VideoURL
	sub.IsPreview = req.IsPreview
	sub.InstructorNotes = req.InstructorNotes
	sub.Summary = req.Summary
	if err := s.CourseRepo.UpdateSubsection(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *ContentService) DeleteSubsection(subsectionID string, userID uint, role model.UserRole) error {
	sub, err := s.CourseRepo.FindSubsectionByID(subsectionID)
	if err != nil {
		return util.ErrSectionNotFound
	}
	section, err := s.CourseRepo.FindSectionByID(sub.SectionID)
	if err != nil {
		return util.ErrSectionNotFound
	}
	if _, err := s.requireOwnership(section.CourseID, userID, role); err != nil {
		return err
	}
	return s.CourseRepo.DeleteSubsection(subsectionID)
}

// UploadResource stores the file and attaches it to the section. Videos are
// probed for duration and get a generated thumbnail; probe failures only
// lose the metadata, never the upload.
func (s *ContentService) UploadResource(ctx context.Context, sectionID string, userID uint, role model.UserRole, header *multipart.FileHeader, title string, resType model.ResourceType) (*model.Resource, error) {
	section, err := s.CourseRepo.FindSectionByID(sectionID)
	if err != nil {
		return nil, util.ErrSectionNotFound
	}
	if _, err := s.requireOwnership(section.CourseID, userID, role); err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	objectName := fmt.Sprintf("resources/%s/%s%s", sectionID, uuid.New().String(), ext)
	url, err := s.Storage.Upload(ctx, objectName, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	resource := &model.Resource{
		SectionID:   sectionID,
		Title:       title,
		Type:        resType,
		Size:        util.FormatFileSize(header.Size),
		DownloadURL: url,
		UploaderID:  userID,
	}

	if videoPath := localUploadPath(s.Storage, objectName); resType == model.VideoRes && videoPath != "" {
		if info, err := util.GetVideoInfo(videoPath); err == nil {
			resource.Duration = info.Duration
			resource.Format = info.Format
		} else {
			logger.Log.Warn("video probe failed", zap.String("object", objectName), zap.Error(err))
		}

		thumbObject := strings.TrimSuffix(objectName, ext) + ".jpg"
		if err := util.GenerateThumbnail(videoPath, localUploadPath(s.Storage, thumbObject), "00:00:01"); err == nil {
			resource.Thumbnail = s.Storage.GetURL(thumbObject)
		} else {
			logger.Log.Warn("thumbnail generation failed", zap.String("object", objectName), zap.Error(err))
		}
	}

	if err := s.CourseRepo.CreateResource(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ContentService) DeleteResource(id uint, userID uint, role model.UserRole) error {
	resource, err := s.CourseRepo.FindResourceByID(id)
	if err != nil {
		return util.ErrSectionNotFound
	}
	section, err := s.CourseRepo.FindSectionByID(resource.SectionID)
	if err != nil {
		return util.ErrSectionNotFound
	}
	if _, err := s.requireOwnership(section.CourseID, userID, role); err != nil {
		return err
	}
	return s.CourseRepo.DeleteResource(id)
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (s *ContentService) AddReview(userID uint, courseID string, req *ReviewRequest) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, util.ErrInvalidRating
	}

	enrolled, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	exists, err := s.ReviewRepo.ExistsByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyReviewed
	}

	review := &model.Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.ReviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ContentService) ListReviews(courseID string, page, limit int) ([]model.Review, int64, float64, error) {
	reviews, total, err := s.ReviewRepo.ListByCourse(courseID, page, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	avg, _ := s.ReviewRepo.AverageRating(courseID)
	return reviews, total, avg, nil
}

// localUploadPath resolves the on-disk location of a freshly uploaded object
// for probing, which only works with the local provider.
func localUploadPath(storage *StorageService, objectName string) string {
	if p, ok := storage.Provider.(*LocalStorageProvider); ok {
		return filepath.Join(p.Config.LocalPath, objectName)
	}
	return ""
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = fmt.Sprintf("course-%d", time.Now().Unix())
	}
	return slug
}

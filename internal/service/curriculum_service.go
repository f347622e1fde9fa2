package service

import (
	"context"
	"time"

	"madrasa_backend/internal/model"
	"madrasa_backend/internal/repository"
	"madrasa_backend/internal/util"
	"madrasa_backend/pkg/logger"
	"madrasa_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// CurriculumService tracks per-learner completion state. The key-value
// store is the source of truth; the relational summary row is a best-effort
// mirror whose failures are logged and never surfaced to the learner.
type CurriculumService struct {
	CourseRepo     *repository.CourseRepository
	ProgressRepo   *repository.ProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewCurriculumService(
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *CurriculumService {
	return &CurriculumService{
		CourseRepo:     courseRepo,
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

// ProgressView is the learner-facing progress snapshot for one course.
type ProgressView struct {
	CourseID        string                         `json:"courseId"`
	Completed       model.ProgressMap              `json:"completed"`
	SectionProgress map[string]model.ProgressCount `json:"sectionProgress"`
	Total           model.ProgressCount            `json:"total"`
	Percentage      float64                        `json:"percentage"`
	ResumePoint     *model.ResumePoint             `json:"resumePoint,omitempty"`
}

func (s *CurriculumService) buildView(course *model.Course, progress model.ProgressMap) *ProgressView {
	view := &ProgressView{
		CourseID:        course.ID,
		Completed:       progress,
		SectionProgress: make(map[string]model.ProgressCount, len(course.Sections)),
		Total:           progress.TotalProgress(course),
		Percentage:      progress.Percentage(course),
		ResumePoint:     progress.FindResumePoint(course),
	}
	for i := range course.Sections {
		sec := &course.Sections[i]
		view.SectionProgress[sec.ID] = progress.SectionProgress(sec)
	}
	return view
}

// GetProgress loads the completion map and derives all aggregate numbers.
func (s *CurriculumService) GetProgress(ctx context.Context, userID uint, courseID string) (*ProgressView, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	progress, err := s.ProgressRepo.Load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return s.buildView(course, progress), nil
}

// MarkComplete records one subsection as done. Marking an already complete
// subsection is a no-op that still returns the current view.
func (s *CurriculumService) MarkComplete(ctx context.Context, userID uint, courseID, sectionID, subsectionID string) (*ProgressView, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if course.FindSubsection(sectionID, subsectionID) == nil {
		return nil, model.ErrSubsectionNotFound
	}

	progress, err := s.ProgressRepo.Load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	progress.MarkComplete(sectionID, subsectionID)
	if err := s.ProgressRepo.Save(ctx, userID, courseID, progress); err != nil {
		return nil, err
	}
	monitoring.CompletionCounter.WithLabelValues("manual").Inc()

	view := s.buildView(course, progress)
	s.syncSummary(userID, course, progress, view.ResumePoint)
	return view, nil
}

// ApplyQuizPass performs the bulk section completion a passing quiz earns.
// A failing score leaves the map untouched. Returns the refreshed view and
// whether the bulk write happened.
func (s *CurriculumService) ApplyQuizPass(ctx context.Context, userID uint, courseID, sectionID string, score int) (*ProgressView, bool, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, false, util.ErrCourseNotFound
	}
	sec := course.FindSection(sectionID)
	if sec == nil {
		return nil, false, util.ErrSectionNotFound
	}

	progress, err := s.ProgressRepo.Load(ctx, userID, courseID)
	if err != nil {
		return nil, false, err
	}

	applied := progress.ApplyQuizResult(sec, score)
	if applied {
		if err := s.ProgressRepo.Save(ctx, userID, courseID, progress); err != nil {
			return nil, false, err
		}
		monitoring.CompletionCounter.WithLabelValues("quiz_pass").Add(float64(len(sec.Subsections)))
	}

	view := s.buildView(course, progress)
	if applied {
		s.syncSummary(userID, course, progress, view.ResumePoint)
	}
	return view, applied, nil
}

// syncSummary mirrors aggregates into MySQL. Best effort only.
func (s *CurriculumService) syncSummary(userID uint, course *model.Course, progress model.ProgressMap, resume *model.ResumePoint) {
	if err := s.ProgressRepo.SyncSummary(userID, course, progress, resume); err != nil {
		logger.Log.Warn("progress summary sync failed",
			zap.Uint("user_id", userID),
			zap.String("course_id", course.ID),
			zap.Error(err))
	}
}

// Enroll registers the student and seeds an empty progress record.
func (s *CurriculumService) Enroll(ctx context.Context, userID uint, courseID string) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	exists, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}

	progress := model.ProgressMap{}
	if err := s.ProgressRepo.Save(ctx, userID, courseID, progress); err != nil {
		logger.Log.Warn("seeding progress record failed",
			zap.Uint("user_id", userID),
			zap.String("course_id", courseID),
			zap.Error(err))
	}
	s.syncSummary(userID, course, progress, progress.FindResumePoint(course))

	return enrollment, nil
}

func (s *CurriculumService) Unenroll(userID uint, courseID string) error {
	exists, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrNotEnrolled
	}
	return s.EnrollmentRepo.Delete(userID, courseID)
}

func (s *CurriculumService) IsEnrolled(userID uint, courseID string) (bool, error) {
	return s.EnrollmentRepo.Exists(userID, courseID)
}

// DashboardEntry pairs an enrollment with its mirrored progress summary.
type DashboardEntry struct {
	Enrollment model.Enrollment    `json:"enrollment"`
	Summary    *model.UserProgress `json:"summary,omitempty"`
}

func (s *CurriculumService) Dashboard(userID uint) ([]DashboardEntry, error) {
	enrollments, err := s.EnrollmentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	// One query for all summaries rather than one per enrollment.
	byCourse := make(map[string]*model.UserProgress)
	if summaries, err := s.ProgressRepo.ListSummaries(userID); err == nil {
		for i := range summaries {
			byCourse[summaries[i].CourseID] = &summaries[i]
		}
	}

	entries := make([]DashboardEntry, 0, len(enrollments))
	for _, e := range enrollments {
		entries = append(entries, DashboardEntry{
			Enrollment: e,
			Summary:    byCourse[e.CourseID],
		})
	}
	return entries, nil
}

// CourseRoster lists mirrored progress rows for an instructor's course.
func (s *CurriculumService) CourseRoster(courseID string, userID uint, role model.UserRole) ([]model.UserProgress, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if role != model.Admin && course.InstructorID != userID {
		return nil, util.ErrPermissionDenied
	}
	return s.ProgressRepo.ListByCourse(courseID)
}

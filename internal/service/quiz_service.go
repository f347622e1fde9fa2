package service

import (
	"context"
	"time"

	"madrasa_backend/internal/model"
	"madrasa_backend/internal/repository"
	"madrasa_backend/internal/util"

	"gorm.io/gorm"
)

// QuizService grades submissions and applies the completion a passing
// score earns.
type QuizService struct {
	QuizRepo    *repository.QuizRepository
	CourseRepo  *repository.CourseRepository
	Curriculum  *CurriculumService
	Certificate *CertificateService
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	courseRepo *repository.CourseRepository,
	curriculum *CurriculumService,
	certificate *CertificateService,
) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		CourseRepo:  courseRepo,
		Curriculum:  curriculum,
		Certificate: certificate,
	}
}

// StudentQuestion is a question with the answer key stripped.
type StudentQuestion struct {
	ID      uint     `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Order   int      `json:"order"`
}

// StudentQuiz is the quiz shape served to learners.
type StudentQuiz struct {
	ID              string            `json:"id"`
	SectionID       string            `json:"sectionId"`
	Title           string            `json:"title"`
	PassingScore    int               `json:"passingScore"`
	TimeLimit       int               `json:"timeLimit"`
	AttemptsAllowed int               `json:"attemptsAllowed"`
	AttemptsUsed    int               `json:"attemptsUsed"`
	Questions       []StudentQuestion `json:"questions"`
}

// GetQuizForStudent returns the section quiz without correct answers, plus
// how many attempts the learner has already spent.
func (s *QuizService) GetQuizForStudent(userID uint, sectionID string) (*StudentQuiz, error) {
	quiz, err := s.QuizRepo.FindBySectionID(sectionID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}

	used, err := s.QuizRepo.CountAttempts(userID, quiz.ID)
	if err != nil {
		return nil, err
	}

	out := &StudentQuiz{
		ID:              quiz.ID,
		SectionID:       quiz.SectionID,
		Title:           quiz.Title,
		PassingScore:    quiz.PassingScore,
		TimeLimit:       quiz.TimeLimit,
		AttemptsAllowed: quiz.AttemptsAllowed,
		AttemptsUsed:    int(used),
		Questions:       make([]StudentQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		out.Questions = append(out.Questions, StudentQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.Options,
			Order:   q.Order,
		})
	}
	return out, nil
}

type SubmitQuizRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	Answers  []int  `json:"answers" binding:"required"`
}

// QuestionReview explains one graded question back to the learner.
type QuestionReview struct {
	QuestionID    uint   `json:"questionId"`
	Selected      int    `json:"selected"`
	CorrectAnswer int    `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizResult is the graded outcome of a submission.
type QuizResult struct {
	Score             int              `json:"score"`
	Passed            bool             `json:"passed"`
	SectionCompleted  bool             `json:"sectionCompleted"`
	CertificateIssued bool             `json:"certificateIssued"`
	AttemptsRemaining int              `json:"attemptsRemaining"`
	Review            []QuestionReview `json:"review"`
	Progress          *ProgressView    `json:"progress,omitempty"`
}

// SubmitQuiz grades an answer vector against the section quiz. The whole
// vector is graded in one shot; unanswered positions count as wrong. A
// passing score bulk-completes the section, and completing the whole course
// with a pass triggers certificate issuance.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID uint, quizID string, req *SubmitQuizRequest) (*QuizResult, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if len(quiz.Questions) == 0 {
		return nil, model.ErrNoQuestions
	}
	if len(req.Answers) != len(quiz.Questions) {
		return nil, util.ErrAnswerCountMismatch
	}

	used, err := s.QuizRepo.CountAttempts(userID, quiz.ID)
	if err != nil {
		return nil, err
	}
	if quiz.AttemptsAllowed > 0 && int(used) >= quiz.AttemptsAllowed {
		return nil, util.ErrAttemptLimitReached
	}

	score := model.ScoreAnswers(quiz.Questions, req.Answers)
	passed := score >= model.PassThreshold

	record := &model.QuizAttemptRecord{
		UserID:      userID,
		QuizID:      quiz.ID,
		Score:       score,
		Answers:     req.Answers,
		Passed:      passed,
		CompletedAt: time.Now(),
	}
	if err := s.QuizRepo.CreateAttempt(record); err != nil {
		return nil, err
	}

	result := &QuizResult{
		Score:  score,
		Passed: passed,
		Review: make([]QuestionReview, 0, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		result.Review = append(result.Review, QuestionReview{
			QuestionID:    q.ID,
			Selected:      req.Answers[i],
			CorrectAnswer: q.CorrectAnswer,
			Correct:       req.Answers[i] == q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	if quiz.AttemptsAllowed > 0 {
		result.AttemptsRemaining = quiz.AttemptsAllowed - int(used) - 1
	}

	view, applied, err := s.Curriculum.ApplyQuizPass(ctx, userID, req.CourseID, quiz.SectionID, score)
	if err != nil {
		return nil, err
	}
	result.SectionCompleted = applied
	result.Progress = view

	if passed && view.Total.Total > 0 && view.Total.Completed == view.Total.Total {
		cert, err := s.Certificate.IssueIfEligible(userID, req.CourseID, score)
		if err == nil && cert != nil {
			result.CertificateIssued = true
		}
	}

	return result, nil
}

func (s *QuizService) ListAttempts(userID uint, quizID string) ([]model.QuizAttemptRecord, error) {
	return s.QuizRepo.ListAttempts(userID, quizID)
}

type QuizQuestionRequest struct {
	Text          string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Order         int      `json:"order"`
}

type CreateQuizRequest struct {
	Title           string                `json:"title" binding:"required"`
	PassingScore    int                   `json:"passingScore"`
	TimeLimit       int                   `json:"timeLimit"`
	AttemptsAllowed int                   `json:"attemptsAllowed"`
	Questions       []QuizQuestionRequest `json:"questions"`
}

// CreateQuiz attaches a quiz to a section. Authoring is instructor-only;
// the controller enforces the role, ownership is checked here.
func (s *QuizService) CreateQuiz(sectionID string, userID uint, role model.UserRole, req *CreateQuizRequest) (*model.Quiz, error) {
	section, err := s.CourseRepo.FindSectionByID(sectionID)
	if err != nil {
		return nil, util.ErrSectionNotFound
	}
	course, err := s.CourseRepo.FindByID(section.CourseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if role != model.Admin && course.InstructorID != userID {
		return nil, util.ErrPermissionDenied
	}

	quiz := &model.Quiz{
		SectionID:       sectionID,
		Title:           req.Title,
		PassingScore:    req.PassingScore,
		TimeLimit:       req.TimeLimit,
		AttemptsAllowed: req.AttemptsAllowed,
	}
	if quiz.PassingScore == 0 {
		quiz.PassingScore = model.PassThreshold
	}
	for _, q := range req.Questions {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Order:         q.Order,
		})
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// requireQuizOwnership walks quiz -> section -> course and checks the
// caller owns the course (admins always pass).
func (s *QuizService) requireQuizOwnership(quizID string, userID uint, role model.UserRole) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	section, err := s.CourseRepo.FindSectionByID(quiz.SectionID)
	if err != nil {
		return nil, util.ErrSectionNotFound
	}
	course, err := s.CourseRepo.FindByID(section.CourseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if role != model.Admin && course.InstructorID != userID {
		return nil, util.ErrPermissionDenied
	}
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(quizID string, userID uint, role model.UserRole) error {
	if _, err := s.requireQuizOwnership(quizID, userID, role); err != nil {
		return err
	}
	return s.QuizRepo.Delete(quizID)
}

// AddQuestion appends a question to an existing quiz.
func (s *QuizService) AddQuestion(quizID string, userID uint, role model.UserRole, req *QuizQuestionRequest) (*model.QuizQuestion, error) {
	quiz, err := s.requireQuizOwnership(quizID, userID, role)
	if err != nil {
		return nil, err
	}

	question := &model.QuizQuestion{
		QuizID:        quiz.ID,
		Text:          req.Text,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Order:         req.Order,
	}
	if question.Order == 0 {
		question.Order = len(quiz.Questions) + 1
	}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion rewrites a question in place, keeping its quiz binding.
func (s *QuizService) UpdateQuestion(questionID uint, userID uint, role model.UserRole, req *QuizQuestionRequest) (*model.QuizQuestion, error) {
	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if _, err := s.requireQuizOwnership(question.QuizID, userID, role); err != nil {
		return nil, err
	}

	question.Text = req.Text
	question.Options = req.Options
	question.CorrectAnswer = req.CorrectAnswer
	question.Explanation = req.Explanation
	if req.Order != 0 {
		question.Order = req.Order
	}
	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) DeleteQuestion(questionID uint, userID uint, role model.UserRole) error {
	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		return util.ErrQuizNotFound
	}
	if _, err := s.requireQuizOwnership(question.QuizID, userID, role); err != nil {
		return err
	}
	return s.QuizRepo.DeleteQuestion(questionID)
}

// BestScore is -1 when the learner has never attempted the quiz.
func (s *QuizService) BestScore(userID uint, quizID string) (int, error) {
	score, err := s.QuizRepo.BestScore(userID, quizID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return -1, err
	}
	return score, nil
}

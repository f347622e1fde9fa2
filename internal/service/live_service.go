package service

import (
	"time"

	"madrasa_backend/internal/model"
	"madrasa_backend/internal/repository"
	"madrasa_backend/internal/util"
	"madrasa_backend/pkg/clock"
	"madrasa_backend/pkg/logger"

	"go.uber.org/zap"
)

// LiveService runs live-classroom polls and Q&A. There is no realtime
// transport; clients poll for state and the server auto-closes timed polls.
type LiveService struct {
	LiveRepo   *repository.LiveRepository
	CourseRepo *repository.CourseRepository
	Clock      clock.Clock
}

func NewLiveService(liveRepo *repository.LiveRepository, courseRepo *repository.CourseRepository, clk clock.Clock) *LiveService {
	return &LiveService{LiveRepo: liveRepo, CourseRepo: courseRepo, Clock: clk}
}

type CreatePollRequest struct {
	Question        string   `json:"question" binding:"required"`
	Options         []string `json:"options" binding:"required"`
	DurationSeconds int      `json:"durationSeconds"`
}

// CreatePoll opens a poll for a course. A positive duration schedules an
// automatic close.
func (s *LiveService) CreatePoll(courseID string, userID uint, role model.UserRole, req *CreatePollRequest) (*model.Poll, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if role != model.Admin && course.InstructorID != userID {
		return nil, util.ErrPermissionDenied
	}

	poll := &model.Poll{
		CourseID:  courseID,
		CreatorID: userID,
		Question:  req.Question,
		Open:      true,
	}
	for _, text := range req.Options {
		poll.Options = append(poll.Options, model.PollOption{Text: text})
	}
	if req.DurationSeconds > 0 {
		closesAt := s.Clock.Now().Add(time.Duration(req.DurationSeconds) * time.Second)
		poll.ClosesAt = &closesAt
	}

	if err := s.LiveRepo.CreatePoll(poll); err != nil {
		return nil, err
	}

	if req.DurationSeconds > 0 {
		pollID := poll.ID
		s.Clock.AfterFunc(time.Duration(req.DurationSeconds)*time.Second, func() {
			if err := s.LiveRepo.ClosePoll(pollID); err != nil {
				logger.Log.Warn("auto-closing poll failed", zap.String("poll_id", pollID), zap.Error(err))
			}
		})
	}
	return poll, nil
}

func (s *LiveService) ListPolls(courseID string) ([]model.Poll, error) {
	return s.LiveRepo.ListPollsByCourse(courseID)
}

func (s *LiveService) ClosePoll(pollID string, userID uint, role model.UserRole) error {
	poll, err := s.LiveRepo.FindPoll(pollID)
	if err != nil {
		return util.ErrPollNotFound
	}
	if role != model.Admin && poll.CreatorID != userID {
		return util.ErrPermissionDenied
	}
	return s.LiveRepo.ClosePoll(pollID)
}

// Vote enforces one vote per user and rejects closed or expired polls.
func (s *LiveService) Vote(pollID string, optionID uint, userID uint) (*model.Poll, error) {
	poll, err := s.LiveRepo.FindPoll(pollID)
	if err != nil {
		return nil, util.ErrPollNotFound
	}
	if !poll.Open || (poll.ClosesAt != nil && s.Clock.Now().After(*poll.ClosesAt)) {
		return nil, util.ErrPollClosed
	}

	valid := false
	for _, opt := range poll.Options {
		if opt.ID == optionID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, model.ErrOptionIndex
	}

	voted, err := s.LiveRepo.HasVoted(pollID, userID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, util.ErrAlreadyVoted
	}

	if err := s.LiveRepo.RecordVote(&model.PollVote{
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
	}); err != nil {
		return nil, err
	}

	return s.LiveRepo.FindPoll(pollID)
}

type AskQuestionRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *LiveService) AskQuestion(courseID string, userID uint, req *AskQuestionRequest) (*model.LiveQuestion, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	question := &model.LiveQuestion{
		CourseID: courseID,
		UserID:   userID,
		Text:     req.Text,
	}
	if err := s.LiveRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *LiveService) ListQuestions(courseID string) ([]model.LiveQuestion, error) {
	return s.LiveRepo.ListQuestions(courseID)
}

func (s *LiveService) UpvoteQuestion(id uint) error {
	return s.LiveRepo.UpvoteQuestion(id)
}

// AnswerQuestion lets the course instructor (or an admin) answer.
func (s *LiveService) AnswerQuestion(id uint, userID uint, role model.UserRole, answer string) (*model.LiveQuestion, error) {
	question, err := s.LiveRepo.FindQuestion(id)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(question.CourseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if role != model.Admin && course.InstructorID != userID {
		return nil, util.ErrPermissionDenied
	}

	if err := s.LiveRepo.AnswerQuestion(id, answer, userID); err != nil {
		return nil, err
	}
	return s.LiveRepo.FindQuestion(id)
}

package repository

import (
	"madrasa_backend/internal/model"

	"gorm.io/gorm"
)

type LiveRepository struct {
	DB *gorm.DB
}

func NewLiveRepository(db *gorm.DB) *LiveRepository {
	return &LiveRepository{DB: db}
}

func (r *LiveRepository) CreatePoll(poll *model.Poll) error {
	return r.DB.Create(poll).Error
}

func (r *LiveRepository) FindPoll(id string) (*model.Poll, error) {
	var poll model.Poll
	err := r.DB.Preload("Options").First(&poll, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *LiveRepository) ListPollsByCourse(courseID string) ([]model.Poll, error) {
	var polls []model.Poll
	err := r.DB.Preload("Options").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&polls).Error
	return polls, err
}

func (r *LiveRepository) ClosePoll(id string) error {
	return r.DB.Model(&model.Poll{}).Where("id = ?", id).Update("open", false).Error
}

func (r *LiveRepository) HasVoted(pollID string, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.PollVote{}).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		Count(&count).Error
	return count > 0, err
}

// RecordVote stores the vote and bumps the option counter in one transaction.
func (r *LiveRepository) RecordVote(vote *model.PollVote) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vote).Error; err != nil {
			return err
		}
		return tx.Model(&model.PollOption{}).
			Where("id = ?", vote.OptionID).
			UpdateColumn("votes", gorm.Expr("votes + 1")).Error
	})
}

func (r *LiveRepository) CreateQuestion(question *model.LiveQuestion) error {
	return r.DB.Create(question).Error
}

func (r *LiveRepository) FindQuestion(id uint) (*model.LiveQuestion, error) {
	var question model.LiveQuestion
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *LiveRepository) ListQuestions(courseID string) ([]model.LiveQuestion, error) {
	var questions []model.LiveQuestion
	err := r.DB.Where("course_id = ?", courseID).
		Order("upvotes DESC, created_at ASC").
		Find(&questions).Error
	return questions, err
}

func (r *LiveRepository) UpvoteQuestion(id uint) error {
	return r.DB.Model(&model.LiveQuestion{}).
		Where("id = ?", id).
		UpdateColumn("upvotes", gorm.Expr("upvotes + 1")).Error
}

func (r *LiveRepository) AnswerQuestion(id uint, answer string, answeredBy uint) error {
	return r.DB.Model(&model.LiveQuestion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"answered":    true,
			"answer":      answer,
			"answered_by": answeredBy,
		}).Error
}

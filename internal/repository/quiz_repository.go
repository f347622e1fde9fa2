package repository

import (
	"madrasa_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.sort_order ASC")
		}).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindBySectionID(sectionID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.sort_order ASC")
		}).
		Where("section_id = ?", sectionID).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Delete(id string) error {
	if err := r.DB.Delete(&model.QuizQuestion{}, "quiz_id = ?", id).Error; err != nil {
		return err
	}
	return r.DB.Delete(&model.Quiz{}, "id = ?", id).Error
}

func (r *QuizRepository) CreateQuestion(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizRepository) FindQuestionByID(id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	if err := r.DB.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuizRepository) UpdateQuestion(question *model.QuizQuestion) error {
	return r.DB.Save(question).Error
}

func (r *QuizRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.QuizQuestion{}, id).Error
}

func (r *QuizRepository) CountAttempts(userID uint, quizID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttemptRecord{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

func (r *QuizRepository) CreateAttempt(attempt *model.QuizAttemptRecord) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizRepository) ListAttempts(userID uint, quizID string) ([]model.QuizAttemptRecord, error) {
	var attempts []model.QuizAttemptRecord
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// BestScore returns the highest recorded score, or -1 when no attempt exists.
func (r *QuizRepository) BestScore(userID uint, quizID string) (int, error) {
	var attempts []model.QuizAttemptRecord
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("score DESC").Limit(1).
		Find(&attempts).Error
	if err != nil {
		return -1, err
	}
	if len(attempts) == 0 {
		return -1, nil
	}
	return attempts[0].Score, nil
}

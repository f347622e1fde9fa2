package repository

import (
	"madrasa_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.DB.Create(review).Error
}

func (r *ReviewRepository) ListByCourse(courseID string, page, limit int) ([]model.Review, int64, error) {
	query := r.DB.Model(&model.Review{}).Where("course_id = ?", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	err := query.Preload("User").
		Offset((page - 1) * limit).Limit(limit).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepository) ExistsByUserAndCourse(userID uint, courseID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Review{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) AverageRating(courseID string) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.Review{}).
		Where("course_id = ?", courseID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

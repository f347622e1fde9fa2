package repository

import (
	"madrasa_backend/internal/model"

	"gorm.io/gorm"
)

type StudyGroupRepository struct {
	DB *gorm.DB
}

func NewStudyGroupRepository(db *gorm.DB) *StudyGroupRepository {
	return &StudyGroupRepository{DB: db}
}

func (r *StudyGroupRepository) Create(group *model.StudyGroup) error {
	return r.DB.Create(group).Error
}

func (r *StudyGroupRepository) FindByID(id string) (*model.StudyGroup, error) {
	var group model.StudyGroup
	err := r.DB.First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *StudyGroupRepository) List(courseID string, page, limit int) ([]model.StudyGroup, int64, error) {
	query := r.DB.Model(&model.StudyGroup{})
	if courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []model.StudyGroup
	err := query.Offset((page - 1) * limit).Limit(limit).
		Order("created_at DESC").
		Find(&groups).Error
	return groups, total, err
}

func (r *StudyGroupRepository) ListByUser(userID uint) ([]model.StudyGroup, error) {
	var groups []model.StudyGroup
	err := r.DB.
		Joins("JOIN group_memberships ON group_memberships.group_id = study_groups.id").
		Where("group_memberships.user_id = ?", userID).
		Find(&groups).Error
	return groups, err
}

func (r *StudyGroupRepository) AddMember(membership *model.GroupMembership) error {
	return r.DB.Create(membership).Error
}

func (r *StudyGroupRepository) RemoveMember(groupID string, userID uint) error {
	return r.DB.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMembership{}).Error
}

func (r *StudyGroupRepository) IsMember(groupID string, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *StudyGroupRepository) CountMembers(groupID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.GroupMembership{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

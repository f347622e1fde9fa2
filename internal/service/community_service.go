package service

import (
	"madrasa_backend/internal/model"
	"madrasa_backend/internal/repository"
	"madrasa_backend/internal/util"
)

// CommunityService manages student-run study groups.
type CommunityService struct {
	GroupRepo  *repository.StudyGroupRepository
	CourseRepo *repository.CourseRepository
}

func NewCommunityService(groupRepo *repository.StudyGroupRepository, courseRepo *repository.CourseRepository) *CommunityService {
	return &CommunityService{GroupRepo: groupRepo, CourseRepo: courseRepo}
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CourseID    string `json:"courseId"`
	MaxMembers  int    `json:"maxMembers"`
}

// CreateGroup creates a group with the creator as its first moderator.
func (s *CommunityService) CreateGroup(userID uint, req *CreateGroupRequest) (*model.StudyGroup, error) {
	if req.CourseID != "" {
		if _, err := s.CourseRepo.FindByID(req.CourseID); err != nil {
			return nil, util.ErrCourseNotFound
		}
	}

	group := &model.StudyGroup{
		Name:        req.Name,
		Description: req.Description,
		CourseID:    req.CourseID,
		CreatorID:   userID,
		MaxMembers:  req.MaxMembers,
	}
	if group.MaxMembers <= 0 {
		group.MaxMembers = 20
	}

	if err := s.GroupRepo.Create(group); err != nil {
		return nil, err
	}

	membership := &model.GroupMembership{
		GroupID: group.ID,
		UserID:  userID,
		Role:    "moderator",
	}
	if err := s.GroupRepo.AddMember(membership); err != nil {
		return nil, err
	}
	group.MemberCount = 1
	return group, nil
}

func (s *CommunityService) ListGroups(courseID string, page, limit int) ([]model.StudyGroup, int64, error) {
	groups, total, err := s.GroupRepo.List(courseID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range groups {
		if count, err := s.GroupRepo.CountMembers(groups[i].ID); err == nil {
			groups[i].MemberCount = int(count)
		}
	}
	return groups, total, nil
}

func (s *CommunityService) MyGroups(userID uint) ([]model.StudyGroup, error) {
	groups, err := s.GroupRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if count, err := s.GroupRepo.CountMembers(groups[i].ID); err == nil {
			groups[i].MemberCount = int(count)
		}
	}
	return groups, nil
}

// JoinGroup enforces the member cap and the one-membership rule.
func (s *CommunityService) JoinGroup(groupID string, userID uint) error {
	group, err := s.GroupRepo.FindByID(groupID)
	if err != nil {
		return util.ErrGroupNotFound
	}

	member, err := s.GroupRepo.IsMember(groupID, userID)
	if err != nil {
		return err
	}
	if member {
		return util.ErrAlreadyMember
	}

	count, err := s.GroupRepo.CountMembers(groupID)
	if err != nil {
		return err
	}
	if int(count) >= group.MaxMembers {
		return util.ErrGroupFull
	}

	return s.GroupRepo.AddMember(&model.GroupMembership{
		GroupID: groupID,
		UserID:  userID,
		Role:    "member",
	})
}

func (s *CommunityService) LeaveGroup(groupID string, userID uint) error {
	member, err := s.GroupRepo.IsMember(groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return util.ErrNotMember
	}
	return s.GroupRepo.RemoveMember(groupID, userID)
}

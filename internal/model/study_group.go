package model

// StudyGroup is a student-run discussion circle, optionally tied to a
// course.
type StudyGroup struct {
	UUIDBase
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CourseID    string `gorm:"index;type:varchar(36)" json:"courseId,omitempty"`
	CreatorID   uint   `gorm:"index;not null" json:"creatorId"`
	MaxMembers  int    `gorm:"default:20" json:"maxMembers"`

	MemberCount int `gorm:"-" json:"memberCount"`
}

func (StudyGroup) TableName() string {
	return "study_groups"
}

type GroupMembership struct {
	BaseModel
	GroupID string `gorm:"uniqueIndex:idx_group_user;type:varchar(36);not null" json:"groupId"`
	UserID  uint   `gorm:"uniqueIndex:idx_group_user;not null" json:"userId"`
	Role    string `gorm:"size:20;default:'member'" json:"role"` // member | moderator
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}

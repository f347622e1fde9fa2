package model

import "time"

// Poll is a live-classroom poll. State is plain rows; there is no realtime
// transport, clients poll.
type Poll struct {
	UUIDBase
	CourseID  string       `gorm:"index;type:varchar(36);not null" json:"courseId"`
	CreatorID uint         `gorm:"index;not null" json:"creatorId"`
	Question  string       `gorm:"size:500;not null" json:"question"`
	Open      bool         `gorm:"default:true" json:"open"`
	ClosesAt  *time.Time   `json:"closesAt,omitempty"`
	Options   []PollOption `gorm:"foreignKey:PollID" json:"options,omitempty"`
}

func (Poll) TableName() string {
	return "polls"
}

type PollOption struct {
	BaseModel
	PollID string `gorm:"index;type:varchar(36);not null" json:"pollId"`
	Text   string `gorm:"size:255;not null" json:"text"`
	Votes  int    `gorm:"default:0" json:"votes"`
}

func (PollOption) TableName() string {
	return "poll_options"
}

// PollVote enforces one vote per user per poll.
type PollVote struct {
	BaseModel
	PollID   string `gorm:"uniqueIndex:idx_poll_user;type:varchar(36);not null" json:"pollId"`
	OptionID uint   `gorm:"index;not null" json:"optionId"`
	UserID   uint   `gorm:"uniqueIndex:idx_poll_user;not null" json:"userId"`
}

func (PollVote) TableName() string {
	return "poll_votes"
}

// LiveQuestion is a Q&A entry raised during a live class.
type LiveQuestion struct {
	BaseModel
	CourseID   string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	UserID     uint   `gorm:"index;not null" json:"userId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Upvotes    int    `gorm:"default:0" json:"upvotes"`
	Answered   bool   `gorm:"default:false" json:"answered"`
	Answer     string `gorm:"type:text" json:"answer,omitempty"`
	AnsweredBy uint   `json:"answeredBy,omitempty"`
}

func (LiveQuestion) TableName() string {
	return "live_questions"
}

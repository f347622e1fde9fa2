package model

import "time"

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	SectionID       string         `gorm:"uniqueIndex;type:varchar(36);not null" json:"sectionId"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	PassingScore    int            `gorm:"default:70" json:"passingScore"`
	TimeLimit       int            `gorm:"default:30" json:"timeLimit"` // minutes, 0 = unlimited
	AttemptsAllowed int            `gorm:"default:3" json:"attemptsAllowed"`
	Questions       []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID        string   `gorm:"index;type:varchar(36);not null" json:"quizId"`
	Text          string   `gorm:"type:text;not null" json:"question"`
	Options       []string `gorm:"type:json;serializer:json" json:"options"`
	CorrectAnswer int      `gorm:"not null" json:"-"`
	Explanation   string   `gorm:"type:text" json:"explanation,omitempty"`
	Order         int      `gorm:"column:sort_order;default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAttemptRecord stores a graded submission.
type QuizAttemptRecord struct {
	BaseModel
	UserID      uint      `gorm:"index;not null" json:"userId"`
	QuizID      string    `gorm:"index;type:varchar(36);not null" json:"quizId"`
	Score       int       `gorm:"not null" json:"score"`
	Answers     []int     `gorm:"type:json;serializer:json" json:"answers"`
	Passed      bool      `gorm:"default:false" json:"passed"`
	CompletedAt time.Time `json:"completedAt"`
}

func (QuizAttemptRecord) TableName() string {
	return "quiz_attempt_records"
}

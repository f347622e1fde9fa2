package model

import "time"

// Enrollment links a student to a course. Creating one also seeds an empty
// progress record.
type Enrollment struct {
	BaseModel
	UserID     uint      `gorm:"uniqueIndex:idx_enroll_user_course;not null" json:"userId"`
	CourseID   string    `gorm:"uniqueIndex:idx_enroll_user_course;type:varchar(36);not null" json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

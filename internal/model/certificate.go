package model

import (
	"fmt"
	"time"
)

// Certificate is a display record. The display id is derived from the
// completion timestamp and is deliberately not unique or verifiable; there
// is no revocation.
// swagger:model Certificate
type Certificate struct {
	BaseModel
	UserID         uint      `gorm:"index;not null" json:"userId"`
	CourseID       string    `gorm:"index;type:varchar(36);not null" json:"courseId"`
	DisplayID      string    `gorm:"size:50" json:"displayId"`
	StudentName    string    `gorm:"size:100" json:"studentName"`
	CourseName     string    `gorm:"size:255" json:"courseName"`
	InstructorName string    `gorm:"size:100" json:"instructorName"`
	Score          int       `gorm:"default:0" json:"score"`
	CompletedAt    time.Time `json:"completedAt"`
	PDFURL         string    `gorm:"size:255" json:"pdfUrl,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// ShouldIssueCertificate gates issuance on the universal pass threshold.
func ShouldIssueCertificate(score int) bool {
	return score >= PassThreshold
}

// BuildCertificate produces the display record for a completed course.
func BuildCertificate(studentName, courseName string, completedAt time.Time, instructorName string) Certificate {
	return Certificate{
		DisplayID:      fmt.Sprintf("CERT-%d", completedAt.UnixMilli()),
		StudentName:    studentName,
		CourseName:     courseName,
		InstructorName: instructorName,
		CompletedAt:    completedAt,
	}
}

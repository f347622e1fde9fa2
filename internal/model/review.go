package model

// Review is a 1-5 star course rating left by an enrolled student.
type Review struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CourseID string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Rating   int    `gorm:"not null" json:"rating"`
	Comment  string `gorm:"type:text" json:"comment"`
}

func (Review) TableName() string {
	return "reviews"
}

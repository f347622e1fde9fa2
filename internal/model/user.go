package model

import "time"

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Role       UserRole  `gorm:"type:enum('student','instructor','admin');default:'student'" json:"role"`
	AvatarURL  string    `gorm:"size:255" json:"avatarUrl"`
	Bio        string    `gorm:"type:text" json:"bio"`
	LastActive time.Time `json:"lastActive"`
}

func (User) TableName() string {
	return "users"
}

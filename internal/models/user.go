package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	Username  string    `gorm:"uniqueIndex;size:255;not null" json:"username" example:"johndoe"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email" example:"john@example.com"`
	Password  string    `gorm:"not null" json:"-"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Image     string    `gorm:"size:512" json:"image"`
}

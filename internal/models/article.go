package models

import "time"

type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt   time.Time `gorm:"index" json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug" example:"my-first-article"`
	Title       string    `gorm:"size:255;not null" json:"title" example:"My First Article"`
	Description string    `gorm:"type:text;not null" json:"description" example:"This is a sample article description."`
	Body        string    `gorm:"type:text;not null" json:"body"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author"`
	Tags        []Tag     `gorm:"many2many:article_tags" json:"tags"`
}

package models

// Tag names are stored lowercased and trimmed; normalization happens
// before they reach the repository.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name" example:"golang"`
}

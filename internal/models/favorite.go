package models

import "time"

// Favorite links a user to an article they bookmarked. One row per
// (user, article) pair; the article's favorites count is the number of
// rows pointing at it.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorite_pair;not null" json:"user_id"`
	ArticleID uint      `gorm:"index;uniqueIndex:idx_favorite_pair;not null" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}

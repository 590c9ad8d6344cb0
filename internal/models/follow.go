package models

import "time"

// Follow is a directed relationship: the follower sees the followee's
// articles in their feed. The composite unique index keeps the pair
// from being recorded twice.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"index:idx_follow_follower;uniqueIndex:idx_follow_pair;not null" json:"follower_id"`
	FolloweeID uint      `gorm:"uniqueIndex:idx_follow_pair;not null" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }

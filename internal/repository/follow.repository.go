package repository

import (
	"context"

	"conduit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID uint) error
	Delete(ctx context.Context, followerID, followeeID uint) error
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create is idempotent: following an already-followed user inserts
// nothing and reports success.
func (r *followRepository) Create(ctx context.Context, followerID, followeeID uint) error {
	follow := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package repository

import (
	"context"

	"conduit/internal/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	ListNames(ctx context.Context) ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// ListNames returns the distinct tags currently attached to at least
// one article, alphabetically.
func (r *tagRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Distinct().
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

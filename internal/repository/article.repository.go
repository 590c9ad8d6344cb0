package repository

import (
	"context"

	"conduit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleFilter narrows List results. Zero-value fields are ignored.
type ArticleFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	Limit       int
	Offset      int
}

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article, tagNames []string) error
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]models.Article, int64, error)
	Feed(ctx context.Context, userID uint, limit, offset int) ([]models.Article, int64, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, articleID uint) error
	FindSlugsLike(ctx context.Context, base string) ([]string, error)
	Favorite(ctx context.Context, userID, articleID uint) error
	Unfavorite(ctx context.Context, userID, articleID uint) error
	FavoritesCount(ctx context.Context, articleID uint) (int64, error)
	IsFavorited(ctx context.Context, userID, articleID uint) (bool, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create inserts the article and its tag links in one transaction, so a
// failed tag write never leaves a tagless half-created article behind.
func (r *articleRepository) Create(ctx context.Context, article *models.Article, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		for _, name := range tagNames {
			var tag models.Tag
			if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
				return err
			}
			if err := tx.Model(article).Association("Tags").Append(&tag); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]models.Article, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Article{})

	if filter.Tag != "" {
		tagged := r.db.Table("article_tags").
			Select("article_tags.article_id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
		q = q.Where("articles.id IN (?)", tagged)
	}
	if filter.Author != "" {
		authors := r.db.Model(&models.User{}).Select("id").Where("username = ?", filter.Author)
		q = q.Where("articles.author_id IN (?)", authors)
	}
	if filter.FavoritedBy != "" {
		favoriters := r.db.Model(&models.User{}).Select("id").Where("username = ?", filter.FavoritedBy)
		favorited := r.db.Model(&models.Favorite{}).Select("article_id").Where("user_id IN (?)", favoriters)
		q = q.Where("articles.id IN (?)", favorited)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Tags").
		Order("articles.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// Feed returns articles authored by users the caller follows, newest
// first.
func (r *articleRepository) Feed(ctx context.Context, userID uint, limit, offset int) ([]models.Article, int64, error) {
	followed := r.db.Model(&models.Follow{}).Select("followee_id").Where("follower_id = ?", userID)
	q := r.db.WithContext(ctx).Model(&models.Article{}).Where("articles.author_id IN (?)", followed)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Tags").
		Order("articles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Omit("Tags").Save(article).Error
}

// Delete removes the article together with its comments, tag links and
// favorite links in one transaction, so no orphan rows survive a
// partial failure.
func (r *articleRepository) Delete(ctx context.Context, articleID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", articleID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", articleID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM article_tags WHERE article_id = ?", articleID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, articleID).Error
	})
}

// FindSlugsLike returns every slug equal to base or starting with
// "base-", the candidate set for collision disambiguation.
func (r *articleRepository) FindSlugsLike(ctx context.Context, base string) ([]string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%").
		Pluck("slug", &slugs).Error
	if err != nil {
		return nil, err
	}
	return slugs, nil
}

// Favorite is idempotent: favoriting twice inserts a single link row.
func (r *articleRepository) Favorite(ctx context.Context, userID, articleID uint) error {
	favorite := &models.Favorite{UserID: userID, ArticleID: articleID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(favorite).Error
}

func (r *articleRepository) Unfavorite(ctx context.Context, userID, articleID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Favorite{}).Error
}

func (r *articleRepository) FavoritesCount(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count, err
}

func (r *articleRepository) IsFavorited(ctx context.Context, userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

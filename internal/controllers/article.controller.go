package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"conduit/internal/cache"
	"conduit/internal/middleware"
	"conduit/internal/models"
	"conduit/internal/repository"
	"conduit/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	tagCacheTTL      = time.Minute
)

type ArticleController struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
	cache    *cache.RedisClient
}

// NewArticleController wires the article endpoints. cache may be nil;
// tag-list invalidation is then skipped.
func NewArticleController(
	articles repository.ArticleRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	redisCache *cache.RedisClient,
) *ArticleController {
	return &ArticleController{articles: articles, users: users, follows: follows, cache: redisCache}
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit = defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return limit, offset
}

// articleView assembles the response payload for one article as seen by
// the (possibly anonymous) caller.
func (ac *ArticleController) articleView(c *gin.Context, article *models.Article) (gin.H, error) {
	ctx := c.Request.Context()

	count, err := ac.articles.FavoritesCount(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	favorited := false
	following := false
	if callerID, ok := middleware.CallerID(c); ok {
		favorited, err = ac.articles.IsFavorited(ctx, callerID, article.ID)
		if err != nil {
			return nil, err
		}
		if callerID != article.AuthorID {
			following, err = ac.follows.Exists(ctx, callerID, article.AuthorID)
			if err != nil {
				return nil, err
			}
		}
	}

	return articlePayload(article, favorited, count, following), nil
}

func (ac *ArticleController) ListArticles(c *gin.Context) {
	limit, offset := parsePagination(c)
	filter := repository.ArticleFilter{
		Tag:         utils.NormalizeTag(c.Query("tag")),
		Author:      c.Query("author"),
		FavoritedBy: c.Query("favorited"),
		Limit:       limit,
		Offset:      offset,
	}

	articles, total, err := ac.articles.List(c.Request.Context(), filter)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to list articles")
		return
	}

	payloads := make([]gin.H, 0, len(articles))
	for i := range articles {
		payload, err := ac.articleView(c, &articles[i])
		if err != nil {
			renderError(c, http.StatusInternalServerError, "failed to list articles")
			return
		}
		payloads = append(payloads, payload)
	}

	c.JSON(http.StatusOK, gin.H{"articles": payloads, "articlesCount": total})
}

func (ac *ArticleController) Feed(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, offset := parsePagination(c)
	articles, total, err := ac.articles.Feed(c.Request.Context(), callerID, limit, offset)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to load feed")
		return
	}

	payloads := make([]gin.H, 0, len(articles))
	for i := range articles {
		payload, err := ac.articleView(c, &articles[i])
		if err != nil {
			renderError(c, http.StatusInternalServerError, "failed to load feed")
			return
		}
		payloads = append(payloads, payload)
	}

	c.JSON(http.StatusOK, gin.H{"articles": payloads, "articlesCount": total})
}

func (ac *ArticleController) GetArticle(c *gin.Context) {
	article, err := ac.articles.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "article not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to load article")
		return
	}

	payload, err := ac.articleView(c, article)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to load article")
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": payload})
}

type createArticleRequest struct {
	Article struct {
		Title       string   `json:"title" binding:"required,max=255"`
		Description string   `json:"description" binding:"required"`
		Body        string   `json:"body" binding:"required"`
		TagList     []string `json:"tagList"`
	} `json:"article" binding:"required"`
}

func (ac *ArticleController) CreateArticle(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderValidationError(c, err)
		return
	}

	author, err := ac.users.GetByID(c.Request.Context(), callerID)
	if err != nil {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	slug, err := ac.uniqueSlugFor(c, req.Article.Title)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to create article")
		return
	}

	article := models.Article{
		Slug:        slug,
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		AuthorID:    callerID,
	}

	tagNames := utils.NormalizeTags(req.Article.TagList)
	if err := ac.articles.Create(c.Request.Context(), &article, tagNames); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			renderConflict(c, "slug", "has already been taken")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to create article")
		return
	}

	ac.invalidateTagCache(c)

	article.Author = *author
	article.Tags = make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		article.Tags = append(article.Tags, models.Tag{Name: name})
	}

	c.JSON(http.StatusCreated, gin.H{"article": articlePayload(&article, false, 0, false)})
}

type updateArticleRequest struct {
	Article struct {
		Title       *string `json:"title" binding:"omitempty,max=255"`
		Description *string `json:"description"`
		Body        *string `json:"body"`
	} `json:"article" binding:"required"`
}

func (ac *ArticleController) UpdateArticle(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderValidationError(c, err)
		return
	}

	article, err := ac.articles.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "article not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to update article")
		return
	}

	if article.AuthorID != callerID {
		renderError(c, http.StatusForbidden, "you can only update your own articles")
		return
	}

	if req.Article.Title != nil && *req.Article.Title != article.Title {
		slug, err := ac.uniqueSlugForUpdate(c, *req.Article.Title, article.Slug)
		if err != nil {
			renderError(c, http.StatusInternalServerError, "failed to update article")
			return
		}
		article.Title = *req.Article.Title
		article.Slug = slug
	}
	if req.Article.Description != nil {
		article.Description = *req.Article.Description
	}
	if req.Article.Body != nil {
		article.Body = *req.Article.Body
	}

	if err := ac.articles.Update(c.Request.Context(), article); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			renderConflict(c, "slug", "has already been taken")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to update article")
		return
	}

	payload, err := ac.articleView(c, article)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to update article")
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": payload})
}

func (ac *ArticleController) DeleteArticle(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	article, err := ac.articles.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "article not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}

	if article.AuthorID != callerID {
		renderError(c, http.StatusForbidden, "you can only delete your own articles")
		return
	}

	if err := ac.articles.Delete(c.Request.Context(), article.ID); err != nil {
		renderError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}

	ac.invalidateTagCache(c)

	c.Status(http.StatusNoContent)
}

// FavoriteArticle is idempotent: favoriting twice leaves a single
// favorite link.
func (ac *ArticleController) FavoriteArticle(c *gin.Context) {
	ac.setFavorite(c, true)
}

func (ac *ArticleController) UnfavoriteArticle(c *gin.Context) {
	ac.setFavorite(c, false)
}

func (ac *ArticleController) setFavorite(c *gin.Context, favorite bool) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	article, err := ac.articles.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "article not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	if favorite {
		err = ac.articles.Favorite(c.Request.Context(), callerID, article.ID)
	} else {
		err = ac.articles.Unfavorite(c.Request.Context(), callerID, article.ID)
	}
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	payload, err := ac.articleView(c, article)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": payload})
}

func (ac *ArticleController) uniqueSlugFor(c *gin.Context, title string) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "untitled"
	}
	existing, err := ac.articles.FindSlugsLike(c.Request.Context(), base)
	if err != nil {
		return "", err
	}
	return utils.UniqueSlug(title, existing), nil
}

// uniqueSlugForUpdate excludes the article's current slug from the
// taken set, so retitling back and forth reuses it instead of growing a
// suffix.
func (ac *ArticleController) uniqueSlugForUpdate(c *gin.Context, title, currentSlug string) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "untitled"
	}
	existing, err := ac.articles.FindSlugsLike(c.Request.Context(), base)
	if err != nil {
		return "", err
	}
	filtered := existing[:0]
	for _, s := range existing {
		if s != currentSlug {
			filtered = append(filtered, s)
		}
	}
	return utils.UniqueSlug(title, filtered), nil
}

func (ac *ArticleController) invalidateTagCache(c *gin.Context) {
	if ac.cache == nil {
		return
	}
	if err := ac.cache.InvalidateTagList(c.Request.Context()); err != nil {
		log.Printf("Failed to invalidate tag cache: %v", err)
	}
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"conduit/internal/middleware"
	"conduit/internal/models"
	"conduit/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
}

func NewCommentController(
	comments repository.CommentRepository,
	articles repository.ArticleRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
) *CommentController {
	return &CommentController{comments: comments, articles: articles, users: users, follows: follows}
}

func (cc *CommentController) ListComments(c *gin.Context) {
	article, err := cc.articles.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "article not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to list comments")
		return
	}

	comments, err := cc.comments.ListByArticleID(c.Request.Context(), article.ID)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to list comments")
		return
	}

	callerID, authed := middleware.CallerID(c)

	payloads := make([]gin.H, 0, len(comments))
	for i := range comments {
		following := false
		if authed && callerID != comments[i].AuthorID {
			following, err = cc.follows.Exists(c.Request.Context(), callerID, comments[i].AuthorID)
			if err != nil {
				renderError(c, http.StatusInternalServerError, "failed to list comments")
				return
			}
		}
		payloads = append(payloads, commentPayload(&comments[i], following))
	}

	c.JSON(http.StatusOK, gin.H{"comments": payloads})
}

type createCommentRequest struct {
	Comment struct {
		Body string `json:"body" binding:"required"`
	} `json:"comment" binding:"required"`
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderValidationError(c, err)
		return
	}

	article, err := cc.articles.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "article not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	author, err := cc.users.GetByID(c.Request.Context(), callerID)
	if err != nil {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	comment := models.Comment{
		Body:      req.Comment.Body,
		ArticleID: article.ID,
		AuthorID:  callerID,
	}
	if err := cc.comments.Create(c.Request.Context(), &comment); err != nil {
		renderError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	comment.Author = *author

	c.JSON(http.StatusCreated, gin.H{"comment": commentPayload(&comment, false)})
}

// DeleteComment allows only the comment's author to delete it; the
// article's author has no special right over other people's comments.
func (cc *CommentController) DeleteComment(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	article, err := cc.articles.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "article not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to delete comment")
		return
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		renderError(c, http.StatusNotFound, "comment not found")
		return
	}

	comment, err := cc.comments.GetByID(c.Request.Context(), uint(commentID))
	if err != nil || comment.ArticleID != article.ID {
		renderError(c, http.StatusNotFound, "comment not found")
		return
	}

	if comment.AuthorID != callerID {
		renderError(c, http.StatusForbidden, "you can only delete your own comments")
		return
	}

	if err := cc.comments.Delete(c.Request.Context(), comment.ID); err != nil {
		renderError(c, http.StatusInternalServerError, "failed to delete comment")
		return
	}

	c.Status(http.StatusNoContent)
}

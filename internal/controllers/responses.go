package controllers

import (
	"errors"
	"net/http"
	"strings"

	"conduit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Response envelopes follow the RealWorld API shapes: single resources
// under a named key, errors as a field→messages map under "errors".

func userPayload(user *models.User, token string) gin.H {
	return gin.H{
		"email":    user.Email,
		"token":    token,
		"username": user.Username,
		"bio":      user.Bio,
		"image":    user.Image,
	}
}

func profilePayload(user *models.User, following bool) gin.H {
	return gin.H{
		"username":  user.Username,
		"bio":       user.Bio,
		"image":     user.Image,
		"following": following,
	}
}

func articlePayload(article *models.Article, favorited bool, favoritesCount int64, followingAuthor bool) gin.H {
	tagList := make([]string, 0, len(article.Tags))
	for _, tag := range article.Tags {
		tagList = append(tagList, tag.Name)
	}
	return gin.H{
		"slug":           article.Slug,
		"title":          article.Title,
		"description":    article.Description,
		"body":           article.Body,
		"tagList":        tagList,
		"createdAt":      article.CreatedAt,
		"updatedAt":      article.UpdatedAt,
		"favorited":      favorited,
		"favoritesCount": favoritesCount,
		"author":         profilePayload(&article.Author, followingAuthor),
	}
}

func commentPayload(comment *models.Comment, followingAuthor bool) gin.H {
	return gin.H{
		"id":        comment.ID,
		"createdAt": comment.CreatedAt,
		"updatedAt": comment.UpdatedAt,
		"body":      comment.Body,
		"author":    profilePayload(&comment.Author, followingAuthor),
	}
}

// renderError writes the standard error body for non-validation
// failures.
func renderError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"errors": gin.H{"message": []string{message}},
	})
}

// renderConflict reports a uniqueness violation on a named field.
func renderConflict(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"errors": gin.H{field: []string{message}},
	})
}

// renderValidationError turns a binding failure into a 422 with one
// entry per offending field.
func renderValidationError(c *gin.Context, err error) {
	fields := map[string][]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			fields[name] = append(fields[name], validationMessage(fe))
		}
	} else {
		fields["body"] = []string{"unable to parse request body"}
	}

	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fields})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "can't be blank"
	case "email":
		return "is not a valid email address"
	case "min":
		return "is too short (minimum is " + fe.Param() + " characters)"
	case "max":
		return "is too long (maximum is " + fe.Param() + " characters)"
	default:
		return "is invalid"
	}
}

package controllers

import (
	"errors"
	"net/http"

	"conduit/internal/middleware"
	"conduit/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileController struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

func NewProfileController(users repository.UserRepository, follows repository.FollowRepository) *ProfileController {
	return &ProfileController{users: users, follows: follows}
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	target, err := pc.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "profile not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	following := false
	if callerID, ok := middleware.CallerID(c); ok && callerID != target.ID {
		following, err = pc.follows.Exists(c.Request.Context(), callerID, target.ID)
		if err != nil {
			renderError(c, http.StatusInternalServerError, "failed to load profile")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"profile": profilePayload(target, following)})
}

// Follow is idempotent: following an already-followed user succeeds
// without change.
func (pc *ProfileController) Follow(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	target, err := pc.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "profile not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to follow user")
		return
	}

	if target.ID == callerID {
		renderError(c, http.StatusUnprocessableEntity, "cannot follow yourself")
		return
	}

	if err := pc.follows.Create(c.Request.Context(), callerID, target.ID); err != nil {
		renderError(c, http.StatusInternalServerError, "failed to follow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profilePayload(target, true)})
}

// Unfollow is idempotent: unfollowing a user who was never followed
// still succeeds.
func (pc *ProfileController) Unfollow(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	target, err := pc.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusNotFound, "profile not found")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to unfollow user")
		return
	}

	if err := pc.follows.Delete(c.Request.Context(), callerID, target.ID); err != nil {
		renderError(c, http.StatusInternalServerError, "failed to unfollow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profilePayload(target, false)})
}

package controllers

import (
	"errors"
	"net/http"

	"conduit/internal/auth"
	"conduit/internal/middleware"
	"conduit/internal/models"
	"conduit/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	repo   repository.UserRepository
	tokens auth.TokenManager
}

func NewUserController(repo repository.UserRepository, tokens auth.TokenManager) *UserController {
	return &UserController{repo: repo, tokens: tokens}
}

type registerRequest struct {
	User struct {
		Username string `json:"username" binding:"required,max=255"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8,max=72"`
	} `json:"user" binding:"required"`
}

func (uc *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderValidationError(c, err)
		return
	}

	hash, err := auth.HashPassword(req.User.Password)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to register user")
		return
	}

	user := models.User{
		Username: req.User.Username,
		Email:    req.User.Email,
		Password: hash,
	}

	if err := uc.repo.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			renderConflict(c, "username or email", "is already taken")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to register user")
		return
	}

	token, err := uc.tokens.IssueToken(user.ID)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": userPayload(&user, token)})
}

type loginRequest struct {
	User struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	} `json:"user" binding:"required"`
}

func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderValidationError(c, err)
		return
	}

	// A wrong email and a wrong password answer identically, so a
	// failed login never confirms an account exists.
	user, err := uc.repo.GetByEmail(c.Request.Context(), req.User.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	if err := auth.CheckPassword(user.Password, req.User.Password); err != nil {
		renderError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := uc.tokens.IssueToken(user.ID)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user, token)})
}

func (uc *UserController) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := uc.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		renderError(c, http.StatusNotFound, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user, c.GetString("token"))})
}

type updateUserRequest struct {
	User struct {
		Username *string `json:"username" binding:"omitempty,max=255"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Password *string `json:"password" binding:"omitempty,min=8,max=72"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image" binding:"omitempty,max=512"`
	} `json:"user" binding:"required"`
}

func (uc *UserController) UpdateCurrentUser(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		renderError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderValidationError(c, err)
		return
	}

	user, err := uc.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		renderError(c, http.StatusNotFound, "user not found")
		return
	}

	if req.User.Username != nil {
		user.Username = *req.User.Username
	}
	if req.User.Email != nil {
		user.Email = *req.User.Email
	}
	if req.User.Bio != nil {
		user.Bio = *req.User.Bio
	}
	if req.User.Image != nil {
		user.Image = *req.User.Image
	}
	if req.User.Password != nil {
		hash, err := auth.HashPassword(*req.User.Password)
		if err != nil {
			renderError(c, http.StatusInternalServerError, "failed to update user")
			return
		}
		user.Password = hash
	}

	if err := uc.repo.Update(c.Request.Context(), user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			renderConflict(c, "username or email", "is already taken")
			return
		}
		renderError(c, http.StatusInternalServerError, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user, c.GetString("token"))})
}

package tests

import (
	"net/http"
	"testing"

	"conduit/internal/auth"
	"conduit/internal/controllers"
	"conduit/internal/middleware"
	"conduit/internal/models"
	"conduit/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func setupUserControllerWithMocks() (*controllers.UserController, *mocks.MockUserRepository) {
	mockUserRepo := new(mocks.MockUserRepository)
	controller := controllers.NewUserController(mockUserRepo, testTokenManager())
	return controller, mockUserRepo
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
		checkToken     bool
	}{
		{
			name: "successful registration",
			requestBody: map[string]interface{}{
				"user": map[string]interface{}{
					"username": "johndoe",
					"email":    "john@example.com",
					"password": "secretpassword",
				},
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			checkToken:     true,
		},
		{
			name: "duplicate username or email",
			requestBody: map[string]interface{}{
				"user": map[string]interface{}{
					"username": "johndoe",
					"email":    "john@example.com",
					"password": "secretpassword",
				},
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "invalid email",
			requestBody: map[string]interface{}{
				"user": map[string]interface{}{
					"username": "johndoe",
					"email":    "not-an-email",
					"password": "secretpassword",
				},
			},
			setupMocks:     func(userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "missing password",
			requestBody: map[string]interface{}{
				"user": map[string]interface{}{
					"username": "johndoe",
					"email":    "john@example.com",
				},
			},
			setupMocks:     func(userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, userRepo := setupUserControllerWithMocks()
			tt.setupMocks(userRepo)

			router := setupTestRouter()
			router.POST("/users", controller.Register)

			w := performRequest(router, http.MethodPost, "/users", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.checkToken {
				body := decodeBody(t, w)
				user, ok := body["user"].(map[string]interface{})
				assert.True(t, ok)
				assert.NotEmpty(t, user["token"])
				assert.Equal(t, "johndoe", user["username"])

				// The credential never appears in any response.
				_, hasPassword := user["password"]
				assert.False(t, hasPassword)
				assert.NotContains(t, w.Body.String(), "secretpassword")
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secretpassword")
	assert.NoError(t, err)

	storedUser := &models.User{
		ID:       1,
		Username: "johndoe",
		Email:    "john@example.com",
		Password: hash,
	}

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
		checkToken     bool
	}{
		{
			name: "successful login",
			requestBody: map[string]interface{}{
				"user": map[string]interface{}{
					"email":    "john@example.com",
					"password": "secretpassword",
				},
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetByEmail", mock.Anything, "john@example.com").Return(storedUser, nil)
			},
			expectedStatus: http.StatusOK,
			checkToken:     true,
		},
		{
			name: "wrong password",
			requestBody: map[string]interface{}{
				"user": map[string]interface{}{
					"email":    "john@example.com",
					"password": "wrongpassword",
				},
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetByEmail", mock.Anything, "john@example.com").Return(storedUser, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			requestBody: map[string]interface{}{
				"user": map[string]interface{}{
					"email":    "nobody@example.com",
					"password": "secretpassword",
				},
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, userRepo := setupUserControllerWithMocks()
			tt.setupMocks(userRepo)

			router := setupTestRouter()
			router.POST("/users/login", controller.Login)

			w := performRequest(router, http.MethodPost, "/users/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.checkToken {
				body := decodeBody(t, w)
				user := body["user"].(map[string]interface{})
				assert.NotEmpty(t, user["token"])
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestGetCurrentUser(t *testing.T) {
	controller, userRepo := setupUserControllerWithMocks()
	userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{
		ID:       1,
		Username: "johndoe",
		Email:    "john@example.com",
		Password: "hash",
		Bio:      "hi",
	}, nil)

	router := setupTestRouter()
	router.GET("/user", authAs(1), controller.GetCurrentUser)

	w := performRequest(router, http.MethodGet, "/user", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "johndoe", user["username"])
	assert.Equal(t, "hi", user["bio"])
	assert.NotContains(t, w.Body.String(), "hash")
	userRepo.AssertExpectations(t)
}

func TestUpdateCurrentUser(t *testing.T) {
	t.Run("partial update keeps other fields", func(t *testing.T) {
		controller, userRepo := setupUserControllerWithMocks()
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{
			ID:       1,
			Username: "johndoe",
			Email:    "john@example.com",
			Password: "hash",
		}, nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Bio == "updated bio" && u.Username == "johndoe"
		})).Return(nil)

		router := setupTestRouter()
		router.PUT("/user", authAs(1), controller.UpdateCurrentUser)

		w := performRequest(router, http.MethodPut, "/user", map[string]interface{}{
			"user": map[string]interface{}{"bio": "updated bio"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		userRepo.AssertExpectations(t)
	})

	t.Run("username conflict", func(t *testing.T) {
		controller, userRepo := setupUserControllerWithMocks()
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "johndoe"}, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey)

		router := setupTestRouter()
		router.PUT("/user", authAs(1), controller.UpdateCurrentUser)

		w := performRequest(router, http.MethodPut, "/user", map[string]interface{}{
			"user": map[string]interface{}{"username": "taken"},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		userRepo.AssertExpectations(t)
	})
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	controller, _ := setupUserControllerWithMocks()

	router := setupTestRouter()
	router.GET("/user", middleware.RequireAuth(testTokenManager()), controller.GetCurrentUser)

	t.Run("missing token", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/user", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := performRequestWithToken(router, http.MethodGet, "/user", nil, "Token garbage")
		assert.Equal(t, http.StatusUnauthorized, req.Code)
	})

	t.Run("valid token passes middleware", func(t *testing.T) {
		controller, userRepo := setupUserControllerWithMocks()
		userRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{ID: 7, Username: "sevens"}, nil)

		router := setupTestRouter()
		router.GET("/user", middleware.RequireAuth(testTokenManager()), controller.GetCurrentUser)

		token, err := testTokenManager().IssueToken(7)
		assert.NoError(t, err)

		w := performRequestWithToken(router, http.MethodGet, "/user", nil, "Token "+token)
		assert.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "sevens", user["username"])
		assert.Equal(t, token, user["token"])
	})
}

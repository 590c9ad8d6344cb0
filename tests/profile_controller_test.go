package tests

import (
	"net/http"
	"testing"

	"conduit/internal/controllers"
	"conduit/internal/models"
	"conduit/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func setupProfileControllerWithMocks() (*controllers.ProfileController, *mocks.MockUserRepository, *mocks.MockFollowRepository) {
	mockUserRepo := new(mocks.MockUserRepository)
	mockFollowRepo := new(mocks.MockFollowRepository)
	controller := controllers.NewProfileController(mockUserRepo, mockFollowRepo)
	return controller, mockUserRepo, mockFollowRepo
}

func TestGetProfile(t *testing.T) {
	target := &models.User{ID: 1, Username: "celeb", Bio: "famous", Password: "hash"}

	t.Run("anonymous viewer", func(t *testing.T) {
		controller, userRepo, _ := setupProfileControllerWithMocks()
		userRepo.On("GetByUsername", mock.Anything, "celeb").Return(target, nil)

		router := setupTestRouter()
		router.GET("/profiles/:username", controller.GetProfile)

		w := performRequest(router, http.MethodGet, "/profiles/celeb", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		profile := body["profile"].(map[string]interface{})
		assert.Equal(t, "celeb", profile["username"])
		assert.Equal(t, false, profile["following"])
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("authenticated follower", func(t *testing.T) {
		controller, userRepo, followRepo := setupProfileControllerWithMocks()
		userRepo.On("GetByUsername", mock.Anything, "celeb").Return(target, nil)
		followRepo.On("Exists", mock.Anything, uint(2), uint(1)).Return(true, nil)

		router := setupTestRouter()
		router.GET("/profiles/:username", authAs(2), controller.GetProfile)

		w := performRequest(router, http.MethodGet, "/profiles/celeb", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		profile := body["profile"].(map[string]interface{})
		assert.Equal(t, true, profile["following"])
	})

	t.Run("unknown username", func(t *testing.T) {
		controller, userRepo, _ := setupProfileControllerWithMocks()
		userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		router := setupTestRouter()
		router.GET("/profiles/:username", controller.GetProfile)

		w := performRequest(router, http.MethodGet, "/profiles/ghost", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFollow(t *testing.T) {
	target := &models.User{ID: 1, Username: "celeb"}

	t.Run("follow succeeds", func(t *testing.T) {
		controller, userRepo, followRepo := setupProfileControllerWithMocks()
		userRepo.On("GetByUsername", mock.Anything, "celeb").Return(target, nil)
		followRepo.On("Create", mock.Anything, uint(2), uint(1)).Return(nil)

		router := setupTestRouter()
		router.POST("/profiles/:username/follow", authAs(2), controller.Follow)

		w := performRequest(router, http.MethodPost, "/profiles/celeb/follow", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		profile := body["profile"].(map[string]interface{})
		assert.Equal(t, true, profile["following"])
	})

	t.Run("repeat follow is a no-op success", func(t *testing.T) {
		controller, userRepo, followRepo := setupProfileControllerWithMocks()
		userRepo.On("GetByUsername", mock.Anything, "celeb").Return(target, nil)
		followRepo.On("Create", mock.Anything, uint(2), uint(1)).Return(nil)

		router := setupTestRouter()
		router.POST("/profiles/:username/follow", authAs(2), controller.Follow)

		first := performRequest(router, http.MethodPost, "/profiles/celeb/follow", nil)
		second := performRequest(router, http.MethodPost, "/profiles/celeb/follow", nil)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)
		followRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("self-follow rejected", func(t *testing.T) {
		controller, userRepo, _ := setupProfileControllerWithMocks()
		userRepo.On("GetByUsername", mock.Anything, "celeb").Return(target, nil)

		router := setupTestRouter()
		router.POST("/profiles/:username/follow", authAs(1), controller.Follow)

		w := performRequest(router, http.MethodPost, "/profiles/celeb/follow", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unknown target", func(t *testing.T) {
		controller, userRepo, _ := setupProfileControllerWithMocks()
		userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		router := setupTestRouter()
		router.POST("/profiles/:username/follow", authAs(2), controller.Follow)

		w := performRequest(router, http.MethodPost, "/profiles/ghost/follow", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUnfollow(t *testing.T) {
	target := &models.User{ID: 1, Username: "celeb"}

	t.Run("unfollow succeeds", func(t *testing.T) {
		controller, userRepo, followRepo := setupProfileControllerWithMocks()
		userRepo.On("GetByUsername", mock.Anything, "celeb").Return(target, nil)
		followRepo.On("Delete", mock.Anything, uint(2), uint(1)).Return(nil)

		router := setupTestRouter()
		router.DELETE("/profiles/:username/follow", authAs(2), controller.Unfollow)

		w := performRequest(router, http.MethodDelete, "/profiles/celeb/follow", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		profile := body["profile"].(map[string]interface{})
		assert.Equal(t, false, profile["following"])
	})

	t.Run("unfollow when not following is still success", func(t *testing.T) {
		controller, userRepo, followRepo := setupProfileControllerWithMocks()
		userRepo.On("GetByUsername", mock.Anything, "celeb").Return(target, nil)
		followRepo.On("Delete", mock.Anything, uint(2), uint(1)).Return(nil)

		router := setupTestRouter()
		router.DELETE("/profiles/:username/follow", authAs(2), controller.Unfollow)

		w := performRequest(router, http.MethodDelete, "/profiles/celeb/follow", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

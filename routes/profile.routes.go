package routes

import (
	"conduit/internal/auth"
	"conduit/internal/controllers"
	"conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterProfileRoutes(router *gin.Engine, profileController *controllers.ProfileController, tm auth.TokenManager) {
	profileRoutes := router.Group("/profiles")
	{
		profileRoutes.GET("/:username", middleware.OptionalAuth(tm), profileController.GetProfile)
		profileRoutes.POST("/:username/follow", middleware.RequireAuth(tm), profileController.Follow)
		profileRoutes.DELETE("/:username/follow", middleware.RequireAuth(tm), profileController.Unfollow)
	}
}

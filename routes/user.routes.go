package routes

import (
	"conduit/internal/auth"
	"conduit/internal/controllers"
	"conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController, tm auth.TokenManager) {
	userRoutesPublic := router.Group("/users")
	{
		userRoutesPublic.POST("", userController.Register)
		userRoutesPublic.POST("/login", userController.Login)
	}

	userRoutesPrivate := router.Group("/user")
	userRoutesPrivate.Use(middleware.RequireAuth(tm))
	{
		userRoutesPrivate.GET("", userController.GetCurrentUser)
		userRoutesPrivate.PUT("", userController.UpdateCurrentUser)
	}
}

package routes

import (
	"conduit/internal/auth"
	"conduit/internal/controllers"
	"conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterCommentRoutes(router *gin.Engine, commentController *controllers.CommentController, tm auth.TokenManager) {
	commentRoutes := router.Group("/articles/:slug/comments")
	{
		commentRoutes.GET("", middleware.OptionalAuth(tm), commentController.ListComments)
		commentRoutes.POST("", middleware.RequireAuth(tm), commentController.CreateComment)
		commentRoutes.DELETE("/:id", middleware.RequireAuth(tm), commentController.DeleteComment)
	}
}

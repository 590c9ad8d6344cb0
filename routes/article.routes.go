package routes

import (
	"conduit/internal/auth"
	"conduit/internal/controllers"
	"conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterArticleRoutes(router *gin.Engine, articleController *controllers.ArticleController, tm auth.TokenManager) {
	articleRoutes := router.Group("/articles")
	{
		// /feed must be registered before the :slug routes are added
		// so the literal segment wins.
		articleRoutes.GET("/feed", middleware.RequireAuth(tm), articleController.Feed)
		articleRoutes.GET("", middleware.OptionalAuth(tm), articleController.ListArticles)
		articleRoutes.POST("", middleware.RequireAuth(tm), articleController.CreateArticle)
		articleRoutes.GET("/:slug", middleware.OptionalAuth(tm), articleController.GetArticle)
		articleRoutes.PUT("/:slug", middleware.RequireAuth(tm), articleController.UpdateArticle)
		articleRoutes.DELETE("/:slug", middleware.RequireAuth(tm), articleController.DeleteArticle)
		articleRoutes.POST("/:slug/favorite", middleware.RequireAuth(tm), articleController.FavoriteArticle)
		articleRoutes.DELETE("/:slug/favorite", middleware.RequireAuth(tm), articleController.UnfavoriteArticle)
	}
}

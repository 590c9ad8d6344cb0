package routes

import (
	"conduit/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterTagRoutes(router *gin.Engine, tagController *controllers.TagController) {
	router.GET("/tags", tagController.ListTags)
}

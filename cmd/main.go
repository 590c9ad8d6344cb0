package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"conduit/database"
	"conduit/internal/auth"
	"conduit/internal/cache"
	"conduit/internal/controllers"
	"conduit/internal/repository"
	"conduit/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const tokenTTL = 72 * time.Hour

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set")
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	// Redis is optional: without it tag listings just skip the cache.
	redisCache, err := cache.NewRedisClient()
	if err != nil {
		log.Printf("Warning: Redis unavailable, tag caching disabled: %v", err)
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	tokenManager := auth.NewJWTManager(jwtSecret, tokenTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	followRepo := repository.NewFollowRepository(database.DB)
	articleRepo := repository.NewArticleRepository(database.DB)
	commentRepo := repository.NewCommentRepository(database.DB)
	tagRepo := repository.NewTagRepository(database.DB)

	// Initialize controllers
	userController := controllers.NewUserController(userRepo, tokenManager)
	profileController := controllers.NewProfileController(userRepo, followRepo)
	articleController := controllers.NewArticleController(articleRepo, userRepo, followRepo, redisCache)
	commentController := controllers.NewCommentController(commentRepo, articleRepo, userRepo, followRepo)
	tagController := controllers.NewTagController(tagRepo, redisCache)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Conduit API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	routes.RegisterUserRoutes(router, userController, tokenManager)
	routes.RegisterProfileRoutes(router, profileController, tokenManager)
	routes.RegisterArticleRoutes(router, articleController, tokenManager)
	routes.RegisterCommentRoutes(router, commentController, tokenManager)
	routes.RegisterTagRoutes(router, tagController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Conduit API server starting on port %s", port)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package http

import (
	"net/http"
	"time"

	"blog-api/internal/entity"
	"blog-api/internal/usecase"
	"blog-api/pkg/logger"
	"blog-api/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterConfig struct {
	AuthUseCase    usecase.AuthUseCase
	PostUseCase    usecase.PostUseCase
	UserUseCase    usecase.UserUseCase
	TokenValidator middleware.TokenValidator
	Logger         *logger.Logger

	AllowOrigins []string

	// RedisClient may be nil, which disables rate limiting.
	RedisClient        *redis.Client
	RateLimitPerMinute int
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandler := NewAuthHandler(cfg.AuthUseCase, cfg.Logger)
	postHandler := NewPostHandler(cfg.PostUseCase, cfg.Logger)
	userHandler := NewUserHandler(cfg.UserUseCase, cfg.Logger)

	authenticated := middleware.AuthMiddleware(cfg.TokenValidator)
	rateLimited := middleware.RateLimitMiddleware(cfg.RedisClient, cfg.RateLimitPerMinute, time.Minute)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", rateLimited, authHandler.Register)
			auth.POST("/login", rateLimited, authHandler.Login)
			auth.GET("/me", authenticated, authHandler.Me)
			auth.POST("/logout", authenticated, authHandler.Logout)
		}

		posts := api.Group("/posts", authenticated)
		{
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:id", postHandler.GetPost)
			posts.POST("", postHandler.CreatePost)
			posts.PUT("/:id", postHandler.UpdatePost)
			posts.DELETE("/:id", postHandler.DeletePost)
		}

		users := api.Group("/users", authenticated, middleware.RequireRole(string(entity.RoleAdmin)))
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	return r
}

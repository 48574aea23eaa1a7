package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blogHTTP "blog-api/internal/controller/http"
	"blog-api/internal/repo/persistent"
	"blog-api/internal/usecase"
	"blog-api/pkg/cache"
	"blog-api/pkg/config"
	"blog-api/pkg/database"
	"blog-api/pkg/jwt"
	"blog-api/pkg/logger"
	"blog-api/pkg/queue"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "blog-api/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("Failed to connect to redis: %v (continuing without rate limiting)", err)
			redisClient = nil
		}
	}

	var queueClient *queue.Client
	if cfg.RabbitMQ.Enabled() {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ: %v (continuing without events)", err)
			queueClient = nil
		}
	}

	jwtService := jwt.NewService(jwt.Settings{
		SigningKey: cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		TTL:        cfg.JWT.TTL(),
		ClockSkew:  cfg.JWT.ClockSkew(),
	})

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		queueClient: queueClient,
		jwtService:  jwtService,
	}, nil
}

func (a *App) Run() error {
	if a.cfg.DB.AutoMigrate {
		if err := database.Migrate(a.db); err != nil {
			a.log.Error("Failed to run migrations: %v", err)
			return err
		}
		a.log.Info("Database migrations applied")
	}

	userRepo := persistent.NewUserRepository(a.db)
	postRepo := persistent.NewPostRepository(a.db)

	a.seed(userRepo)

	// A nil *queue.Client must not become a non-nil interface.
	var publisher usecase.EventPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}

	gin.SetMode(gin.ReleaseMode)

	router := blogHTTP.NewRouter(blogHTTP.RouterConfig{
		AuthUseCase:        usecase.NewAuthUseCase(userRepo, a.jwtService, publisher, a.log),
		PostUseCase:        usecase.NewPostUseCase(postRepo, publisher, a.log),
		UserUseCase:        usecase.NewUserUseCase(userRepo, publisher, a.log),
		TokenValidator:     a.jwtService,
		Logger:             a.log,
		AllowOrigins:       a.cfg.CORSAllowOrigins,
		RedisClient:        a.redisClient,
		RateLimitPerMinute: a.cfg.RateLimitPerMinute,
	})

	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("Blog API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

// seed failures are logged and never stop startup.
func (a *App) seed(userRepo persistent.UserRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeder := usecase.NewSeeder(userRepo, a.log)
	if err := seeder.EnsureRoles(ctx); err != nil {
		a.log.Error("Failed to seed roles: %v", err)
		return
	}
	if err := seeder.SeedAdmin(ctx, a.cfg.Seed.AdminEmail, a.cfg.Seed.AdminPassword); err != nil {
		a.log.Error("Failed to seed admin user: %v", err)
	}
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down blog API...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("Blog API exited")
	return shutdownErr
}

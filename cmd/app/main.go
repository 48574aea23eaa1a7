package main

import (
	"blog-api/internal/app"
	"blog-api/pkg/config"
)

// @title           Blog API
// @version         1.0
// @description     Minimal blog backend: JWT authentication, posts and user administration.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWT.Secret == config.PlaceholderJWTSecret {
		panic("JWT_SECRET must be changed from the example value")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}

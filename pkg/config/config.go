package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// PlaceholderJWTSecret is shipped in .env.example and must never reach production.
const PlaceholderJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	// Server
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// CORS
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000" envSeparator:","`

	// Auth endpoints, requests per minute per client. Zero disables the limiter.
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`

	DB       Database `envPrefix:"DB_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	RabbitMQ RabbitMQ `envPrefix:"RABBITMQ_"`
	JWT      JWT      `envPrefix:"JWT_"`
	Seed     Seed     `envPrefix:"SEED_"`
}

type Database struct {
	Host        string `env:"HOST" envDefault:"localhost"`
	Port        string `env:"PORT" envDefault:"5432"`
	User        string `env:"USER" envDefault:"postgres"`
	Password    string `env:"PASSWORD" envDefault:"postgres"`
	Name        string `env:"NAME" envDefault:"blog"`
	SSLMode     string `env:"SSLMODE" envDefault:"disable"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

// DSN returns a postgres:// URL; credentials are escaped.
func (d Database) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Redis is optional; an empty Host leaves rate limiting off.
type Redis struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

func (r Redis) Enabled() bool { return r.Host != "" }

// RabbitMQ is optional; an empty Host disables domain event publishing.
type RabbitMQ struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"5672"`
	User     string `env:"USER" envDefault:"guest"`
	Password string `env:"PASSWORD" envDefault:"guest"`
	Exchange string `env:"EXCHANGE" envDefault:"blog.events"`
}

func (r RabbitMQ) Enabled() bool { return r.Host != "" }

type JWT struct {
	Secret           string `env:"SECRET"`
	Issuer           string `env:"ISSUER" envDefault:"Blog"`
	Audience         string `env:"AUDIENCE" envDefault:"Blog"`
	ExpMinutes       int    `env:"EXP_MINUTES" envDefault:"60"`
	ClockSkewSeconds int    `env:"CLOCK_SKEW_SECONDS" envDefault:"30"`
}

func (j JWT) TTL() time.Duration {
	return time.Duration(j.ExpMinutes) * time.Minute
}

func (j JWT) ClockSkew() time.Duration {
	return time.Duration(j.ClockSkewSeconds) * time.Second
}

// Seed describes the admin account created at startup when both fields are set.
type Seed struct {
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.JWT.ExpMinutes <= 0 {
		return nil, fmt.Errorf("JWT_EXP_MINUTES must be positive, got %d", cfg.JWT.ExpMinutes)
	}

	return cfg, nil
}

// LoadDatabase reads only the DB_* settings. Tools that do not serve
// requests (migrations) use it so they don't require JWT_SECRET.
func LoadDatabase() (*Database, error) {
	_ = godotenv.Load()

	db := &Database{}
	if err := env.ParseWithOptions(db, env.Options{Prefix: "DB_"}); err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	return db, nil
}

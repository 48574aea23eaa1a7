package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "issuer")
	t.Setenv("JWT_AUDIENCE", "audience")
	t.Setenv("JWT_EXP_MINUTES", "15")
	t.Setenv("SEED_ADMIN_EMAIL", "admin@blog.dev")
	t.Setenv("SEED_ADMIN_PASSWORD", "admin123")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.dev,http://b.dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "5433", cfg.DB.Port)
	assert.Equal(t, "testuser", cfg.DB.User)
	assert.Equal(t, "testpass", cfg.DB.Password)
	assert.Equal(t, "testdb", cfg.DB.Name)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, "issuer", cfg.JWT.Issuer)
	assert.Equal(t, "audience", cfg.JWT.Audience)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL())
	assert.Equal(t, "admin@blog.dev", cfg.Seed.AdminEmail)
	assert.Equal(t, "admin123", cfg.Seed.AdminPassword)
	assert.Equal(t, []string{"http://a.dev", "http://b.dev"}, cfg.CORSAllowOrigins)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Blog", cfg.JWT.Issuer)
	assert.Equal(t, "Blog", cfg.JWT.Audience)
	assert.Equal(t, time.Hour, cfg.JWT.TTL())
	assert.Equal(t, 30*time.Second, cfg.JWT.ClockSkew())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.RabbitMQ.Enabled())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadConfig_InvalidTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXP_MINUTES", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	db := Database{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:1/n?sslmode=disable", db.DSN())
}

func TestDatabaseDSN_EscapesCredentials(t *testing.T) {
	db := Database{Host: "db", Port: "5432", User: "blog user", Password: "p@ss w'o:rd/?", Name: "blog", SSLMode: "require"}

	parsed, err := url.Parse(db.DSN())
	require.NoError(t, err)

	password, ok := parsed.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss w'o:rd/?", password)
	assert.Equal(t, "blog user", parsed.User.Username())
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/blog", parsed.Path)
	assert.Equal(t, "require", parsed.Query().Get("sslmode"))
}

func TestLoadDatabase_WithoutJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_NAME", "blog_test")

	db, err := LoadDatabase()
	require.NoError(t, err)

	assert.Equal(t, "blog_test", db.Name)
	assert.Equal(t, "localhost", db.Host)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_NilClientPassesThrough(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimitMiddleware(nil, 1, time.Minute))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_RedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	router := setupTestRouter()
	router.Use(RateLimitMiddleware(client, 5, time.Minute))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func newLimitedRouter(t *testing.T, limit int, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	router := setupTestRouter()
	router.POST("/login", RateLimitMiddleware(client, limit, window), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, mr
}

func postLogin(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.0.2.10:4321"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware_BlocksOverLimitAndResetsPerWindow(t *testing.T) {
	router, mr := newLimitedRouter(t, 2, time.Minute)
	key := "rate_limit:/login:192.0.2.10"

	assert.Equal(t, http.StatusOK, postLogin(router))
	assert.Equal(t, http.StatusOK, postLogin(router))
	assert.Equal(t, http.StatusTooManyRequests, postLogin(router))

	assert.Equal(t, time.Minute, mr.TTL(key))
	count, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "3", count)

	mr.FastForward(time.Minute)

	assert.Equal(t, http.StatusOK, postLogin(router))
	count, err = mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "1", count)
}

func TestRateLimitMiddleware_RearmsKeyWithoutExpiry(t *testing.T) {
	router, mr := newLimitedRouter(t, 2, time.Minute)
	key := "rate_limit:/login:192.0.2.10"

	require.NoError(t, mr.Set(key, "7"))
	require.Equal(t, time.Duration(0), mr.TTL(key))

	assert.Equal(t, http.StatusTooManyRequests, postLogin(router))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusOK, postLogin(router))
}

func TestRateLimitMiddleware_CountsCallersSeparately(t *testing.T) {
	router, _ := newLimitedRouter(t, 1, time.Minute)

	assert.Equal(t, http.StatusOK, postLogin(router))
	assert.Equal(t, http.StatusTooManyRequests, postLogin(router))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "198.51.100.7:1111"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

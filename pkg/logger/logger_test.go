package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
	assert.NotNil(t, logger.debug)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := newLogger(&out, &errOut, LevelWarn)

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)

	assert.NotContains(t, out.String(), "debug 1")
	assert.NotContains(t, out.String(), "info 2")
	assert.Contains(t, out.String(), "WARN: ")
	assert.Contains(t, out.String(), "warn 3")
	assert.Contains(t, errOut.String(), "error 4")
}

func TestLogger_Formatting(t *testing.T) {
	var out bytes.Buffer
	logger := newLogger(&out, &out, LevelDebug)

	logger.Info("User %s logged in with ID %d", "john", 123)

	assert.Contains(t, out.String(), "User john logged in with ID 123")
}

func TestNewNop(t *testing.T) {
	logger := NewNop()

	// Must not panic and must not write anywhere visible.
	logger.Debug("x")
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x")
}

package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/monastery360/service-travel/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_writesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travel.log")

	log, err := logger.New("production", "service-travel", logger.Options{File: path})
	require.NoError(t, err)
	log.Info("session created", zap.String("session_id", "abc"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id":"abc"`)
	assert.Contains(t, string(data), "service-travel")
}

func TestNew_rejectsUnknownLevel(t *testing.T) {
	_, err := logger.New("production", "svc", logger.Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewNamed_development(t *testing.T) {
	log, err := logger.NewNamed("development", "svc")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}

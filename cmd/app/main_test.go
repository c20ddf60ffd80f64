package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edge-segmentation/internal/config"
)

func TestInitLoggerLevels(t *testing.T) {
	cfg := config.DefaultConfig()

	logger, closeLog := initLogger(cfg)
	defer closeLog()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Debug = true
	logger, closeDebug := initLogger(cfg)
	defer closeDebug()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestInitLoggerWritesFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "app.log")

	logger, closeLog := initLogger(cfg)
	logger.Info("hello from test")
	closeLog()

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

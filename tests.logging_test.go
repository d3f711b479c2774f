package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestSetupLogging_UsesInjectedClock ensures log entries are stamped
// by the provided clock rather than the wall clock, so production logs
// carry UTC timestamps whatever the host timezone is.
func TestSetupLogging_UsesInjectedClock(t *testing.T) {
	config := &Config{
		IsProduction: true,
		LogFolder:    t.TempDir(),
		LogMaxSize:   1,
		LogLevel:     zapcore.InfoLevel,
	}
	w := NewRSyncWriter(config, NewMockClocker())
	logger, flusher := SetupLogging(config, w, NewMockTickerClocker())

	logger.Info("clock check")
	require.NoError(t, flusher())
	require.NoError(t, w.Close())

	entries, err := os.ReadDir(config.LogFolder)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(config.LogFolder, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "clock check")
	// the mocked clock instant, not time.Now().
	assert.Contains(t, string(data), "2023-07-02T00:00:00")
}

// TestCreateLogFilePath ensures the log file name carries the clock
// instant and the environment key.
func TestCreateLogFilePath(t *testing.T) {
	path := CreateLogFilePath("/var/log/app", true, NewMockClocker().Now())
	assert.Equal(t, "/var/log/app/20230702.000000.prod.log", path)

	path = CreateLogFilePath("logs", false, NewMockClocker().Now())
	assert.Equal(t, filepath.Join("logs", "20230702.000000.dev.log"), path)
}

//go:build unit
// +build unit

package logger

import (
	"path/filepath"
	"testing"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("ConsoleLogger", func(t *testing.T) {
		log, err := newLogger(&config.LoggerSettings{
			LogLevel: config.LogLevelInfo,
			LogType:  config.LogTypeConsole,
		})
		require.NoError(t, err)
		assert.IsType(t, &ConsoleLogger{}, log)
		log.Info("console message ", 42)
		log.Warn("warning")
		log.Error("error")
	})

	t.Run("FileLogger", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "app.log")
		log, err := newLogger(&config.LoggerSettings{
			LogLevel:   config.LogLevelDebug,
			LogType:    config.LogTypeFile,
			FilePath:   logPath,
			MaxSize:    1,
			MaxBackups: 1,
			MaxAge:     1,
		})
		require.NoError(t, err)
		assert.IsType(t, &FileLogger{}, log)
		log.Info("file message")
	})

	t.Run("InvalidSettings", func(t *testing.T) {
		_, err := newLogger(&config.LoggerSettings{
			LogLevel: "shouting",
			LogType:  config.LogTypeConsole,
		})
		assert.Error(t, err)
	})
}

func TestInitLoggerIsIdempotent(t *testing.T) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}

	require.NoError(t, InitLogger(settings))
	require.NoError(t, InitLogger(settings))

	first, err := GetLogger()
	require.NoError(t, err)
	second, err := GetLogger()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

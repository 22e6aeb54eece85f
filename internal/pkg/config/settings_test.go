//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *LoggerSettings
		expectedError bool
	}{
		{
			name: "valid console logger",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo,
				LogType:  LogTypeConsole,
			},
			expectedError: false,
		},
		{
			name: "valid file logger with rotation",
			settings: &LoggerSettings{
				LogLevel:   LogLevelInfo,
				LogType:    LogTypeFile,
				FilePath:   "/path/to/log/file",
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			},
			expectedError: false,
		},
		{
			name: "missing log level",
			settings: &LoggerSettings{
				LogType: LogTypeConsole,
			},
			expectedError: true,
		},
		{
			name: "invalid log type",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo,
				LogType:  "invalid",
			},
			expectedError: true,
		},
		{
			name: "file logger missing file path",
			settings: &LoggerSettings{
				LogLevel:   LogLevelInfo,
				LogType:    LogTypeFile,
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			},
			expectedError: true,
		},
		{
			name: "file logger missing rotation settings",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo,
				LogType:  LogTypeFile,
				FilePath: "/path/to/log/file",
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				assert.Error(t, err, "expected an error")
			} else {
				assert.NoError(t, err, "expected no error")
			}
		})
	}
}

func TestDatabaseSettingsValidation(t *testing.T) {
	valid := &DatabaseSettings{Path: "audit.db"}
	assert.NoError(t, valid.Validate())

	missing := &DatabaseSettings{}
	assert.Error(t, missing.Validate())
}

func TestInitializeRestConfig(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "rest-app.yaml")
		content := []byte(`port: "9090"
logger:
  log_level: info
  log_type: console
database:
  path: "audit.db"
`)
		require.NoError(t, os.WriteFile(configPath, content, 0600))

		restConfig, err := InitializeRestConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "9090", restConfig.Port)
		assert.Equal(t, LogTypeConsole, restConfig.Logger.LogType)
		assert.Equal(t, "audit.db", restConfig.Database.Path)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := InitializeRestConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("InvalidLoggerSettings", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "rest-app.yaml")
		content := []byte(`port: "9090"
logger:
  log_level: shouting
  log_type: console
`)
		require.NoError(t, os.WriteFile(configPath, content, 0600))

		_, err := InitializeRestConfig(configPath)
		assert.Error(t, err)
	})
}

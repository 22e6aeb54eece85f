package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// RestConfig holds the settings of the REST API binary.
type RestConfig struct {
	Port     string           `mapstructure:"port" validate:"required"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
}

// Validate checks that all fields in RestConfig are valid
func (s *RestConfig) Validate() error {
	validate := validator.New()

	if err := validate.StructExcept(s, "Logger", "Database"); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}

	return s.Logger.Validate()
}

// InitializeRestConfig reads and validates the REST configuration file.
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var restConfig RestConfig
	if err := viper.Unmarshal(&restConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := restConfig.Validate(); err != nil {
		return nil, err
	}
	return &restConfig, nil
}

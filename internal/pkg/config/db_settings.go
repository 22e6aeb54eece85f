package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DatabaseSettings holds configuration for the optional sqlite audit store.
// The audit trail records only non-sensitive operation metadata; leaving Path
// empty disables persistence entirely.
type DatabaseSettings struct {
	Path string `mapstructure:"path" validate:"required"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	return nil
}

// Package audit defines the operation audit trail: non-sensitive metadata
// about envelope operations. Records never contain plaintext, ciphertext or
// key material, only fingerprints and sizes.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Operation names recorded in the audit trail.
const (
	OpGenerateKeys  = "generate-keys"
	OpWrapDirect    = "wrap-direct-rsa"
	OpUnwrapDirect  = "unwrap-direct-rsa"
	OpWrapPassword  = "wrap-password-aes"
	OpUnwrapPass    = "unwrap-password-aes"
	OpWrapHybrid    = "wrap-hybrid"
	OpUnwrapHybrid  = "unwrap-hybrid"
	OpImportKey     = "import-public-key"
	OpExportKey     = "export-public-key"
	OpExportPrivate = "export-private-key"
)

// Record is one audited envelope operation.
type Record struct {
	ID              string `validate:"required,uuid4"`
	Operation       string `validate:"required"`
	Format          string
	PayloadSize     int
	KeyFingerprint  string
	KeyBits         int
	Succeeded       bool
	DateTimeCreated time.Time `validate:"required"`
}

// Validate checks the record before it is persisted.
func (r *Record) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for audit record: %w", err)
	}
	return nil
}

// Repository persists audit records.
type Repository interface {
	// Create stores a new audit record.
	Create(ctx context.Context, record *Record) error

	// List returns the most recent records, newest first, up to limit.
	List(ctx context.Context, limit int) ([]*Record, error)
}

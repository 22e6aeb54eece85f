// Package models holds the GORM database models of the persistence layer.
package models

import (
	"time"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/audit"
)

// AuditRecordModel is the GORM database model for audit records
// (infrastructure concern).
type AuditRecordModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Operation       string    `gorm:"not null;index;type:varchar(40)"`
	Format          string    `gorm:"type:varchar(20)"`
	PayloadSize     int       `gorm:"type:integer"`
	KeyFingerprint  string    `gorm:"index;type:varchar(128)"`
	KeyBits         int       `gorm:"type:integer"`
	Succeeded       bool      `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (AuditRecordModel) TableName() string {
	return "audit_records"
}

// ToDomain converts GORM model to domain entity
func (m *AuditRecordModel) ToDomain() *audit.Record {
	return &audit.Record{
		ID:              m.ID,
		Operation:       m.Operation,
		Format:          m.Format,
		PayloadSize:     m.PayloadSize,
		KeyFingerprint:  m.KeyFingerprint,
		KeyBits:         m.KeyBits,
		Succeeded:       m.Succeeded,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AuditRecordModel) FromDomain(r *audit.Record) {
	m.ID = r.ID
	m.Operation = r.Operation
	m.Format = r.Format
	m.PayloadSize = r.PayloadSize
	m.KeyFingerprint = r.KeyFingerprint
	m.KeyBits = r.KeyBits
	m.Succeeded = r.Succeeded
	m.DateTimeCreated = r.DateTimeCreated
}

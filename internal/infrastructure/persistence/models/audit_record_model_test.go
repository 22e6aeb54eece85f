//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/audit"

	"github.com/stretchr/testify/assert"
)

func TestAuditRecordModel_DomainConversion(t *testing.T) {
	record := &audit.Record{
		ID:              uuid.New().String(),
		Operation:       audit.OpWrapHybrid,
		Format:          "HYBRID-RSA-AES",
		PayloadSize:     65536,
		KeyFingerprint:  "deadbeef",
		KeyBits:         4096,
		Succeeded:       true,
		DateTimeCreated: time.Now().UTC(),
	}

	model := &AuditRecordModel{}
	model.FromDomain(record)
	assert.Equal(t, record.ID, model.ID)
	assert.Equal(t, record.Operation, model.Operation)

	roundTripped := model.ToDomain()
	assert.Equal(t, record, roundTripped)
}

func TestAuditRecordModel_TableName(t *testing.T) {
	assert.Equal(t, "audit_records", AuditRecordModel{}.TableName())
}

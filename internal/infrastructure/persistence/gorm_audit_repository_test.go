//go:build unit
// +build unit

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/audit"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/config"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuditRepository(t *testing.T) audit.Repository {
	t.Helper()
	logger := testutil.SetupTestLogger(t)

	db, err := NewDBConnection(config.DatabaseSettings{Path: ""})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, CloseDB(db))
	})

	repo, err := NewGormAuditRepository(db, logger)
	require.NoError(t, err)
	return repo
}

func newTestRecord(operation string, createdAt time.Time) *audit.Record {
	return &audit.Record{
		ID:              uuid.New().String(),
		Operation:       operation,
		Format:          "RSA-ENC",
		PayloadSize:     42,
		KeyFingerprint:  "abc123",
		KeyBits:         2048,
		Succeeded:       true,
		DateTimeCreated: createdAt,
	}
}

func TestGormAuditRepository(t *testing.T) {
	t.Run("CreateAndList", func(t *testing.T) {
		repo := setupAuditRepository(t)
		ctx := context.Background()

		record := newTestRecord(audit.OpWrapDirect, time.Now().UTC())
		require.NoError(t, repo.Create(ctx, record))

		records, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, record.ID, records[0].ID)
		assert.Equal(t, audit.OpWrapDirect, records[0].Operation)
		assert.Equal(t, 42, records[0].PayloadSize)
		assert.True(t, records[0].Succeeded)
	})

	t.Run("ListNewestFirstWithLimit", func(t *testing.T) {
		repo := setupAuditRepository(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour)
		oldest := newTestRecord(audit.OpGenerateKeys, base)
		middle := newTestRecord(audit.OpWrapHybrid, base.Add(time.Minute))
		newest := newTestRecord(audit.OpUnwrapHybrid, base.Add(2*time.Minute))

		for _, record := range []*audit.Record{middle, oldest, newest} {
			require.NoError(t, repo.Create(ctx, record))
		}

		records, err := repo.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, newest.ID, records[0].ID)
		assert.Equal(t, middle.ID, records[1].ID)
	})

	t.Run("CreateRejectsInvalidRecord", func(t *testing.T) {
		repo := setupAuditRepository(t)

		record := newTestRecord(audit.OpWrapDirect, time.Now().UTC())
		record.ID = "not-a-uuid"
		err := repo.Create(context.Background(), record)
		assert.Error(t, err)
	})
}

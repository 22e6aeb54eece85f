//go:build unit
// +build unit

package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
)

func TestRecordValidation(t *testing.T) {
	valid := func() *Record {
		return &Record{
			ID:              uuid.New().String(),
			Operation:       OpWrapDirect,
			Format:          "RSA-ENC",
			Succeeded:       true,
			DateTimeCreated: time.Now().UTC(),
		}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("MissingID", func(t *testing.T) {
		record := valid()
		record.ID = ""
		assert.Error(t, record.Validate())
	})

	t.Run("NonUUIDID", func(t *testing.T) {
		record := valid()
		record.ID = "record-1"
		assert.Error(t, record.Validate())
	})

	t.Run("MissingOperation", func(t *testing.T) {
		record := valid()
		record.Operation = ""
		assert.Error(t, record.Validate())
	})

	t.Run("MissingTimestamp", func(t *testing.T) {
		record := valid()
		record.DateTimeCreated = time.Time{}
		assert.Error(t, record.Validate())
	})
}

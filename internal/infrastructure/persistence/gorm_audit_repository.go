package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/audit"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/persistence/models"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

type gormAuditRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAuditRepository creates a new GORM-based audit.Repository implementation
func NewGormAuditRepository(db *gorm.DB, logger logger.Logger) (audit.Repository, error) {
	return &gormAuditRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAuditRepository) Create(ctx context.Context, record *audit.Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AuditRecordModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	r.logger.Info("Recorded ", record.Operation, " audit entry ", record.ID)
	return nil
}

func (r *gormAuditRepository) List(ctx context.Context, limit int) ([]*audit.Record, error) {
	var modelList []*models.AuditRecordModel
	dbQuery := r.db.WithContext(ctx).
		Model(&models.AuditRecordModel{}).
		Order("date_time_created desc")

	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch audit records: %w", err)
	}

	domainList := make([]*audit.Record, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

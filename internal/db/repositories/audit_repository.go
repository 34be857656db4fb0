package repositories

import (
	"context"
	"fmt"

	gormModels "brigade-ops/rollcall/internal/models/gorm"

	"gorm.io/gorm"
)

// AuditGormRepository persists append-only roster audit entries
type AuditGormRepository struct {
	db *gorm.DB
}

var _ AuditRepository = (*AuditGormRepository)(nil)

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) Append(ctx context.Context, entry *gormModels.EventAuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *AuditGormRepository) ListByEvent(ctx context.Context, eventID string) ([]gormModels.EventAuditLog, error) {
	var entries []gormModels.EventAuditLog

	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("at asc").
		Find(&entries).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return entries, nil
}

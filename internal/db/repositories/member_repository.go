package repositories

import (
	"context"
	"fmt"

	gormModels "brigade-ops/rollcall/internal/models/gorm"

	"gorm.io/gorm"
)

// MemberGormRepository handles member directory operations using GORM
type MemberGormRepository struct {
	db *gorm.DB
}

var _ MemberRepository = (*MemberGormRepository)(nil)

func NewMemberGormRepository(db *gorm.DB) *MemberGormRepository {
	return &MemberGormRepository{db: db}
}

func (r *MemberGormRepository) GetByID(ctx context.Context, stationID, id string) (*gormModels.Member, error) {
	var member gormModels.Member

	err := r.db.WithContext(ctx).
		Where("id = ? AND station_id = ?", id, stationID).
		First(&member).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	return &member, nil
}

func (r *MemberGormRepository) GetByCode(ctx context.Context, stationID, code string) (*gormModels.Member, error) {
	var member gormModels.Member

	err := r.db.WithContext(ctx).
		Where("code = ? AND station_id = ?", code, stationID).
		First(&member).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch member by code: %w", err)
	}

	return &member, nil
}

func (r *MemberGormRepository) List(ctx context.Context, stationID string) ([]gormModels.Member, error) {
	var members []gormModels.Member

	err := r.db.WithContext(ctx).
		Where("station_id = ? AND is_active = ?", stationID, true).
		Order("name asc").
		Find(&members).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return members, nil
}

func (r *MemberGormRepository) Insert(ctx context.Context, member *gormModels.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

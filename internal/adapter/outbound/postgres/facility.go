package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"gorm.io/gorm"
)

// facilityAdapter implements outbound.FacilityDatabasePort.
type facilityAdapter struct {
	db *gorm.DB
}

// NewFacilityAdapter creates a new facility database adapter.
func NewFacilityAdapter(db *gorm.DB) outbound.FacilityDatabasePort {
	return &facilityAdapter{db: db}
}

var _ outbound.FacilityDatabasePort = (*facilityAdapter)(nil)

func (a *facilityAdapter) Create(ctx context.Context, facility *model.Facility) error {
	if err := a.db.WithContext(ctx).Create(facility).Error; err != nil {
		return fmt.Errorf("create facility: %w", err)
	}
	return nil
}

func (a *facilityAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Facility, error) {
	var facility model.Facility
	err := a.db.WithContext(ctx).First(&facility, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find facility by id: %w", err)
	}
	return &facility, nil
}

func (a *facilityAdapter) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Facility, error) {
	var facilities []*model.Facility
	err := a.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&facilities).Error
	if err != nil {
		return nil, fmt.Errorf("list facilities by owner: %w", err)
	}
	return facilities, nil
}

func (a *facilityAdapter) ListActive(ctx context.Context) ([]*model.Facility, error) {
	var facilities []*model.Facility
	err := a.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&facilities).Error
	if err != nil {
		return nil, fmt.Errorf("list active facilities: %w", err)
	}
	return facilities, nil
}

func (a *facilityAdapter) Update(ctx context.Context, facility *model.Facility) error {
	if err := a.db.WithContext(ctx).Save(facility).Error; err != nil {
		return fmt.Errorf("update facility: %w", err)
	}
	return nil
}

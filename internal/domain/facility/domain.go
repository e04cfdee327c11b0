// Package facility serves the facility catalogue and slot pricing
// quotes. Facilities themselves are provisioned out of band; this
// engine only reads them.
package facility

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sporthub/server/internal/domain/pricing"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
)

// Quote prices a prospective slot before any booking is opened. All
// amounts are minor currency units.
type Quote struct {
	FacilityID    uuid.UUID `json:"facility_id"`
	DurationHours int       `json:"duration_hours"`
	BaseAmount    int64     `json:"base_amount"`
	Discounted    int64     `json:"discounted_amount"`
	UserPayment   int64     `json:"user_payment"`
	GatewayFee    int64     `json:"gateway_fee"`
	OwnerAmount   int64     `json:"owner_amount"`
}

// FacilityDomain defines the interface for facility catalogue logic.
type FacilityDomain interface {
	// List returns active facilities.
	List(ctx context.Context) ([]*model.Facility, error)

	// Get returns a facility by ID.
	Get(ctx context.Context, facilityID uuid.UUID) (*model.Facility, error)

	// QuoteSlot prices a slot of the given duration, applying the
	// long-session discount and grossing up the gateway fee.
	QuoteSlot(ctx context.Context, facilityID uuid.UUID, durationHours int) (*Quote, error)
}

type facilityDomain struct {
	facilityDB outbound.FacilityDatabasePort
	logger     *zap.Logger
}

// NewFacilityDomain creates a new facility domain service.
func NewFacilityDomain(facilityDB outbound.FacilityDatabasePort, logger *zap.Logger) FacilityDomain {
	return &facilityDomain{facilityDB: facilityDB, logger: logger}
}

func (d *facilityDomain) List(ctx context.Context) ([]*model.Facility, error) {
	facilities, err := d.facilityDB.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	return facilities, nil
}

func (d *facilityDomain) Get(ctx context.Context, facilityID uuid.UUID) (*model.Facility, error) {
	facility, err := d.facilityDB.FindByID(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("find facility: %w", err)
	}
	if facility == nil || !facility.IsActive {
		return nil, ErrFacilityNotFound
	}
	return facility, nil
}

func (d *facilityDomain) QuoteSlot(ctx context.Context, facilityID uuid.UUID, durationHours int) (*Quote, error) {
	if durationHours < 1 || durationHours > 24 {
		return nil, ErrInvalidDuration
	}

	facility, err := d.Get(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	base := facility.HourlyRate * int64(durationHours)
	discounted := pricing.DurationDiscount(base, durationHours)
	payment, err := pricing.UserPayment(discounted)
	if err != nil {
		return nil, fmt.Errorf("price slot: %w", err)
	}
	split, err := pricing.Split(discounted, payment)
	if err != nil {
		return nil, fmt.Errorf("split slot price: %w", err)
	}

	return &Quote{
		FacilityID:    facilityID,
		DurationHours: durationHours,
		BaseAmount:    base,
		Discounted:    discounted,
		UserPayment:   split.UserPayment,
		GatewayFee:    split.GatewayFee,
		OwnerAmount:   split.OwnerAmount,
	}, nil
}

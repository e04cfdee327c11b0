// Package availability gates slot requests against facility operating
// windows and confirmed bookings. The checks here serve the browsing
// path; the authoritative check happens inside the booking commit
// transaction.
package availability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"go.uber.org/zap"
)

// HourStatus is one hour of a facility's day.
type HourStatus struct {
	Hour      int  `json:"hour"`
	Available bool `json:"available"`
}

// DaySchedule is the advisory availability snapshot for one facility
// on one date.
type DaySchedule struct {
	FacilityID uuid.UUID    `json:"facility_id"`
	Date       string       `json:"date"`
	OpensAt    int          `json:"opens_at"`
	ClosesAt   int          `json:"closes_at"`
	Hours      []HourStatus `json:"hours"`
}

// AvailabilityDomain defines the interface for availability business logic.
type AvailabilityDomain interface {
	// CheckSlot validates a slot against the facility's operating window
	// and the given confirmed bookings. Returns false when the slot
	// overlaps one of them.
	CheckSlot(facility *model.Facility, slot model.Slot, confirmed []*model.Booking) (bool, error)

	// IsAvailable performs an advisory availability check against the
	// store. It may serve from the snapshot cache.
	IsAvailable(ctx context.Context, slot model.Slot) (bool, error)

	// GetDaySchedule returns the advisory hour-by-hour schedule for a
	// facility on a date, served from the snapshot cache when possible.
	GetDaySchedule(ctx context.Context, facilityID uuid.UUID, date string) (*DaySchedule, error)

	// InvalidateDay drops the cached snapshot after a booking commit.
	InvalidateDay(ctx context.Context, facilityID uuid.UUID, date string)
}

type availabilityDomain struct {
	facilityDB outbound.FacilityDatabasePort
	bookingDB  outbound.BookingDatabasePort
	cache      outbound.AvailabilityCachePort
	logger     *zap.Logger
}

// NewAvailabilityDomain creates a new availability domain service. The
// cache port may be nil, in which case every read hits the store.
func NewAvailabilityDomain(
	facilityDB outbound.FacilityDatabasePort,
	bookingDB outbound.BookingDatabasePort,
	cache outbound.AvailabilityCachePort,
	logger *zap.Logger,
) AvailabilityDomain {
	return &availabilityDomain{
		facilityDB: facilityDB,
		bookingDB:  bookingDB,
		cache:      cache,
		logger:     logger,
	}
}

func (d *availabilityDomain) CheckSlot(facility *model.Facility, slot model.Slot, confirmed []*model.Booking) (bool, error) {
	if slot.DurationHours < 1 {
		return false, ErrInvalidDuration
	}
	if slot.StartHour < facility.OpensAt || slot.EndHour() > facility.ClosesAt {
		return false, ErrInsufficientOperatingWindow
	}
	for _, b := range confirmed {
		if slot.Overlaps(b.Slot()) {
			return false, nil
		}
	}
	return true, nil
}

func (d *availabilityDomain) IsAvailable(ctx context.Context, slot model.Slot) (bool, error) {
	facility, err := d.facilityDB.FindByID(ctx, slot.FacilityID)
	if err != nil {
		return false, fmt.Errorf("find facility: %w", err)
	}
	if facility == nil || !facility.IsActive {
		return false, ErrFacilityNotFound
	}

	confirmed, err := d.bookingDB.ListConfirmedForFacilityDate(ctx, slot.FacilityID, slot.Date)
	if err != nil {
		return false, fmt.Errorf("list confirmed bookings: %w", err)
	}
	return d.CheckSlot(facility, slot, confirmed)
}

func (d *availabilityDomain) GetDaySchedule(ctx context.Context, facilityID uuid.UUID, date string) (*DaySchedule, error) {
	if d.cache != nil {
		if raw, err := d.cache.GetSnapshot(ctx, facilityID, date); err != nil {
			d.logger.Warn("availability cache read failed",
				zap.String("facility_id", facilityID.String()),
				zap.Error(err))
		} else if raw != nil {
			var cached DaySchedule
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	facility, err := d.facilityDB.FindByID(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("find facility: %w", err)
	}
	if facility == nil || !facility.IsActive {
		return nil, ErrFacilityNotFound
	}

	confirmed, err := d.bookingDB.ListConfirmedForFacilityDate(ctx, facilityID, date)
	if err != nil {
		return nil, fmt.Errorf("list confirmed bookings: %w", err)
	}

	schedule := buildSchedule(facility, date, confirmed)

	if d.cache != nil {
		if raw, err := json.Marshal(schedule); err == nil {
			if err := d.cache.SetSnapshot(ctx, facilityID, date, raw); err != nil {
				d.logger.Warn("availability cache write failed",
					zap.String("facility_id", facilityID.String()),
					zap.Error(err))
			}
		}
	}
	return schedule, nil
}

func (d *availabilityDomain) InvalidateDay(ctx context.Context, facilityID uuid.UUID, date string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Invalidate(ctx, facilityID, date); err != nil {
		d.logger.Warn("availability cache invalidation failed",
			zap.String("facility_id", facilityID.String()),
			zap.String("date", date),
			zap.Error(err))
	}
}

func buildSchedule(facility *model.Facility, date string, confirmed []*model.Booking) *DaySchedule {
	booked := make(map[int]bool)
	for _, b := range confirmed {
		for h := b.StartHour; h < b.StartHour+b.DurationHours; h++ {
			booked[h] = true
		}
	}

	hours := make([]HourStatus, 0, facility.ClosesAt-facility.OpensAt)
	for h := facility.OpensAt; h < facility.ClosesAt; h++ {
		hours = append(hours, HourStatus{Hour: h, Available: !booked[h]})
	}

	return &DaySchedule{
		FacilityID: facility.ID,
		Date:       date,
		OpensAt:    facility.OpensAt,
		ClosesAt:   facility.ClosesAt,
		Hours:      hours,
	}
}

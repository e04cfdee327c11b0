package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bookingAdapter implements outbound.BookingDatabasePort.
type bookingAdapter struct {
	db *gorm.DB
}

// NewBookingAdapter creates a new booking database adapter.
func NewBookingAdapter(db *gorm.DB) outbound.BookingDatabasePort {
	return &bookingAdapter{db: db}
}

var _ outbound.BookingDatabasePort = (*bookingAdapter)(nil)

func (a *bookingAdapter) Create(ctx context.Context, booking *model.Booking) error {
	if err := a.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// slotLockKey identifies the facility-day an advisory lock covers.
func slotLockKey(facilityID uuid.UUID, date string) string {
	return facilityID.String() + ":" + date
}

// acquireSlotLock takes a transaction-scoped advisory lock on the
// facility-day. Under READ COMMITTED the overlap query locks no rows
// when the slot is free, so two concurrent commits would each see an
// empty result and both insert; the advisory lock is the serialization
// point that makes the check-then-insert safe. Released automatically
// at commit or rollback.
func acquireSlotLock(tx *gorm.DB, facilityID uuid.UUID, date string) error {
	return tx.Exec(
		"SELECT pg_advisory_xact_lock(hashtext(?))",
		slotLockKey(facilityID, date),
	).Error
}

// lockOverlapping locks confirmed bookings overlapping the slot and
// reports whether any exist. Must run inside a transaction, after
// acquireSlotLock; the row locks guard concurrent status updates, the
// advisory lock guards concurrent inserts.
func lockOverlapping(tx *gorm.DB, facilityID uuid.UUID, date string, startHour, durationHours int, excludeID *uuid.UUID) (bool, error) {
	var existing model.Booking
	query := tx.Model(&model.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("facility_id = ? AND date = ? AND status = ?",
			facilityID, date, model.BookingStatusConfirmed).
		Where("start_hour < ? AND start_hour + duration_hours > ?",
			startHour+durationHours, startHour)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	err := query.Take(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (a *bookingAdapter) CommitTeamBooking(ctx context.Context, booking *model.Booking, team *model.Team, ledger *model.ContributionLedger) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireSlotLock(tx, booking.FacilityID, booking.Date); err != nil {
			return fmt.Errorf("acquire slot lock: %w", err)
		}
		taken, err := lockOverlapping(tx, booking.FacilityID, booking.Date,
			booking.StartHour, booking.DurationHours, nil)
		if err != nil {
			return fmt.Errorf("lock overlapping bookings: %w", err)
		}
		if taken {
			return outbound.ErrSlotTaken
		}
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		if err := tx.Omit("Members").Save(team).Error; err != nil {
			return fmt.Errorf("save team: %w", err)
		}
		if err := tx.Omit("Contributions").Save(ledger).Error; err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
		return nil
	})
}

func (a *bookingAdapter) ConfirmIfSlotFree(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", bookingID).Error; err != nil {
			return fmt.Errorf("find booking: %w", err)
		}

		if err := acquireSlotLock(tx, booking.FacilityID, booking.Date); err != nil {
			return fmt.Errorf("acquire slot lock: %w", err)
		}
		taken, err := lockOverlapping(tx, booking.FacilityID, booking.Date,
			booking.StartHour, booking.DurationHours, &booking.ID)
		if err != nil {
			return fmt.Errorf("lock overlapping bookings: %w", err)
		}
		if taken {
			return outbound.ErrSlotTaken
		}

		now := tx.NowFunc()
		booking.Status = model.BookingStatusConfirmed
		booking.ConfirmedAt = &now
		booking.UpdatedAt = now
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (a *bookingAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	err := a.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find booking by id: %w", err)
	}
	return &booking, nil
}

func (a *bookingAdapter) FindByReference(ctx context.Context, reference string) (*model.Booking, error) {
	var booking model.Booking
	err := a.db.WithContext(ctx).First(&booking, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find booking by reference: %w", err)
	}
	return &booking, nil
}

func (a *bookingAdapter) ListConfirmedForFacilityDate(ctx context.Context, facilityID uuid.UUID, date string) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := a.db.WithContext(ctx).
		Where("facility_id = ? AND date = ? AND status = ?",
			facilityID, date, model.BookingStatusConfirmed).
		Order("start_hour").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list confirmed bookings: %w", err)
	}
	return bookings, nil
}

func (a *bookingAdapter) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	return bookings, nil
}

func (a *bookingAdapter) Update(ctx context.Context, booking *model.Booking) error {
	if err := a.db.WithContext(ctx).Save(booking).Error; err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

package outbound

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
)

// ErrSlotTaken is returned by conditional booking writes when a
// confirmed booking already overlaps the requested slot.
var ErrSlotTaken = errors.New("slot already taken")

// BookingDatabasePort defines booking persistence operations.
type BookingDatabasePort interface {
	// Create creates a new booking record.
	Create(ctx context.Context, booking *model.Booking) error

	// CommitTeamBooking inserts the booking and persists the updated
	// team and ledger in one transaction, failing with ErrSlotTaken when
	// a confirmed booking already overlaps the slot. Nothing is written
	// on conflict.
	CommitTeamBooking(ctx context.Context, booking *model.Booking, team *model.Team, ledger *model.ContributionLedger) error

	// ConfirmIfSlotFree transitions a pending booking to confirmed only
	// if no other confirmed booking overlaps its slot. The check and the
	// update run in one transaction under a slot lock.
	ConfirmIfSlotFree(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error)

	// FindByID finds a booking by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)

	// FindByReference finds a booking by gateway transaction reference.
	FindByReference(ctx context.Context, reference string) (*model.Booking, error)

	// ListConfirmedForFacilityDate lists confirmed bookings for a
	// facility on a date.
	ListConfirmedForFacilityDate(ctx context.Context, facilityID uuid.UUID, date string) ([]*model.Booking, error)

	// ListByUser lists bookings made by a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error)

	// Update updates a booking record.
	Update(ctx context.Context, booking *model.Booking) error
}

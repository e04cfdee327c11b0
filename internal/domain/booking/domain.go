// Package booking finalizes reservations: the solo flow charges one
// payer through the gateway's virtual account, the team flow commits a
// fully confirmed contribution ledger onto a slot. Slot exclusivity is
// enforced by the store's conditional writes, never by a pre-check.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/domain/availability"
	"github.com/sporthub/server/internal/domain/pricing"
	"github.com/sporthub/server/internal/infra/events"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"github.com/sporthub/server/internal/shared/config"
	"github.com/sporthub/server/internal/utils/random"
	"go.uber.org/zap"
)

// SoloParams collects the inputs for a single-payer booking.
type SoloParams struct {
	FacilityID    uuid.UUID
	Date          string
	StartHour     int
	DurationHours int
	ReferralCode  *string
}

// BookingDomain defines the interface for booking business logic.
type BookingDomain interface {
	// CreateBooking opens a pending solo booking and returns the owner's
	// virtual account the payer should transfer to.
	CreateBooking(ctx context.Context, userID uuid.UUID, params SoloParams) (*model.Booking, *model.VirtualAccount, error)

	// ApplyDiscount funds a referral discount from the payer's wallet.
	// At most once per booking.
	ApplyDiscount(ctx context.Context, bookingID, actorID uuid.UUID) (*model.Booking, error)

	// Finalize commits a team's booking. Creator only; the team's ledger
	// must be fully confirmed. On a slot race the losing team keeps its
	// ready_for_payment status and may finalize another slot.
	Finalize(ctx context.Context, teamID, actorID uuid.UUID) (*model.Booking, error)

	// Cancel cancels a booking up to the cutoff before its start hour.
	// Idempotent on an already cancelled booking.
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID) (*model.Booking, error)

	// Get returns a booking by ID.
	Get(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error)

	// ListByUser lists the user's bookings, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error)

	// ProcessWebhookEvent applies a verified gateway webhook to the
	// booking it references. Idempotent per event.
	ProcessWebhookEvent(ctx context.Context, eventType, reference string, payload []byte) error
}

type bookingDomain struct {
	bookingDB  outbound.BookingDatabasePort
	teamDB     outbound.TeamDatabasePort
	ledgerDB   outbound.LedgerDatabasePort
	facilityDB outbound.FacilityDatabasePort
	userDB     outbound.UserDatabasePort
	ownerDB    outbound.OwnerDatabasePort
	cashbackDB outbound.CashbackDatabasePort
	webhookDB  outbound.WebhookEventDatabasePort
	gateway    outbound.PaymentGatewayPort
	avail      availability.AvailabilityDomain
	publisher  outbound.EventPublisherPort
	policy     config.BookingConfig
	logger     *zap.Logger
}

// NewBookingDomain creates a new booking domain service.
func NewBookingDomain(
	bookingDB outbound.BookingDatabasePort,
	teamDB outbound.TeamDatabasePort,
	ledgerDB outbound.LedgerDatabasePort,
	facilityDB outbound.FacilityDatabasePort,
	userDB outbound.UserDatabasePort,
	ownerDB outbound.OwnerDatabasePort,
	cashbackDB outbound.CashbackDatabasePort,
	webhookDB outbound.WebhookEventDatabasePort,
	gateway outbound.PaymentGatewayPort,
	avail availability.AvailabilityDomain,
	publisher outbound.EventPublisherPort,
	policy config.BookingConfig,
	logger *zap.Logger,
) BookingDomain {
	return &bookingDomain{
		bookingDB:  bookingDB,
		teamDB:     teamDB,
		ledgerDB:   ledgerDB,
		facilityDB: facilityDB,
		userDB:     userDB,
		ownerDB:    ownerDB,
		cashbackDB: cashbackDB,
		webhookDB:  webhookDB,
		gateway:    gateway,
		avail:      avail,
		publisher:  publisher,
		policy:     policy,
		logger:     logger,
	}
}

func (d *bookingDomain) CreateBooking(ctx context.Context, userID uuid.UUID, params SoloParams) (*model.Booking, *model.VirtualAccount, error) {
	facility, err := d.facilityDB.FindByID(ctx, params.FacilityID)
	if err != nil {
		return nil, nil, fmt.Errorf("find facility: %w", err)
	}
	if facility == nil || !facility.IsActive {
		return nil, nil, ErrFacilityNotFound
	}

	owner, err := d.ownerDB.FindByID(ctx, facility.OwnerID)
	if err != nil {
		return nil, nil, fmt.Errorf("find owner: %w", err)
	}
	if owner == nil || !owner.HasVirtualAccount() {
		return nil, nil, ErrNoVirtualAccount
	}

	slot := model.Slot{
		FacilityID:    params.FacilityID,
		Date:          params.Date,
		StartHour:     params.StartHour,
		DurationHours: params.DurationHours,
	}
	confirmed, err := d.bookingDB.ListConfirmedForFacilityDate(ctx, params.FacilityID, params.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("list confirmed bookings: %w", err)
	}
	free, err := d.avail.CheckSlot(facility, slot, confirmed)
	if err != nil {
		return nil, nil, err
	}
	if !free {
		return nil, nil, ErrSlotUnavailable
	}

	base := pricing.DurationDiscount(facility.HourlyRate*int64(params.DurationHours), params.DurationHours)
	payment, err := pricing.UserPayment(base)
	if err != nil {
		return nil, nil, err
	}
	split, err := pricing.Split(base, payment)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	booking := &model.Booking{
		ID:            uuid.New(),
		FacilityID:    facility.ID,
		OwnerID:       facility.OwnerID,
		UserID:        userID,
		Date:          params.Date,
		StartHour:     params.StartHour,
		DurationHours: params.DurationHours,
		Amount:        payment,
		Split:         split,
		Status:        model.BookingStatusPending,
		Reference:     generateReference(),
		ReferralCode:  params.ReferralCode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := d.bookingDB.Create(ctx, booking); err != nil {
		return nil, nil, fmt.Errorf("create booking: %w", err)
	}

	d.logger.Info("solo booking opened",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.Int64("amount", booking.Amount))

	account := owner.VirtualAccount()
	return booking, &account, nil
}

func (d *bookingDomain) ApplyDiscount(ctx context.Context, bookingID, actorID uuid.UUID) (*model.Booking, error) {
	booking, err := d.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actorID {
		return nil, ErrNotAuthorized
	}
	if booking.Status != model.BookingStatusPending {
		return nil, ErrBookingNotPending
	}
	if booking.Discounted {
		return nil, ErrAlreadyDiscounted
	}

	user, err := d.userDB.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotAuthorized
	}

	amount, _, applied := pricing.ApplyReferralDiscount(
		booking.Amount, user.WalletBalance, d.policy.ReferralDiscount)
	if !applied {
		return nil, ErrInsufficientWallet
	}

	// The platform margin absorbs the discount; re-split before touching
	// the wallet so an inconsistent result leaves no side effects.
	split, err := pricing.Split(booking.Split.BaseAmount, amount)
	if err != nil {
		return nil, err
	}

	if err := d.userDB.DebitWallet(ctx, actorID, d.policy.ReferralDiscount); err != nil {
		return nil, fmt.Errorf("debit wallet: %w", err)
	}

	booking.Amount = amount
	booking.Split = split
	booking.Discounted = true
	booking.UpdatedAt = time.Now()
	if err := d.bookingDB.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	d.logger.Info("referral discount applied",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("discount", d.policy.ReferralDiscount),
		zap.Int64("amount", booking.Amount))
	return booking, nil
}

func (d *bookingDomain) Finalize(ctx context.Context, teamID, actorID uuid.UUID) (*model.Booking, error) {
	team, err := d.teamDB.FindByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if team.CreatorID != actorID {
		return nil, ErrNotAuthorized
	}
	if team.Status != model.TeamStatusReadyForPayment {
		return nil, ErrLedgerNotReady
	}

	ledger, err := d.ledgerDB.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("find ledger: %w", err)
	}
	if ledger == nil || ledger.Status != model.LedgerStatusReadyForPayment {
		return nil, ErrLedgerNotReady
	}

	facility, err := d.facilityDB.FindByID(ctx, team.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("find facility: %w", err)
	}
	if facility == nil || !facility.IsActive {
		return nil, ErrFacilityNotFound
	}
	if _, err := d.avail.CheckSlot(facility, team.Slot(), nil); err != nil {
		return nil, err
	}

	collected := ledger.RequiredShare * int64(team.MaxPlayers)
	split, err := pricing.Split(team.TotalCost, collected)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &model.Booking{
		ID:            uuid.New(),
		FacilityID:    team.FacilityID,
		OwnerID:       facility.OwnerID,
		UserID:        actorID,
		TeamID:        &team.ID,
		Date:          team.Date,
		StartHour:     team.StartHour,
		DurationHours: team.DurationHours,
		Amount:        collected,
		Split:         split,
		Status:        model.BookingStatusConfirmed,
		Reference:     generateReference(),
		ConfirmedAt:   &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	team.Status = model.TeamStatusCompleted
	team.UpdatedAt = now
	ledger.Status = model.LedgerStatusCompleted
	ledger.UpdatedAt = now

	if err := d.bookingDB.CommitTeamBooking(ctx, booking, team, ledger); err != nil {
		team.Status = model.TeamStatusReadyForPayment
		ledger.Status = model.LedgerStatusReadyForPayment
		if errors.Is(err, outbound.ErrSlotTaken) {
			d.logger.Info("finalize lost slot race",
				zap.String("team_id", team.ID.String()),
				zap.String("facility_id", team.FacilityID.String()),
				zap.String("date", team.Date),
				zap.Int("start_hour", team.StartHour))
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("commit team booking: %w", err)
	}

	d.logger.Info("team booking committed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("team_id", team.ID.String()),
		zap.Int64("amount", booking.Amount))

	d.settleOwner(ctx, booking)
	d.publish(ctx, events.NewBookingConfirmedEvent(
		booking.ID, booking.FacilityID, booking.UserID, booking.TeamID,
		booking.Date, booking.StartHour, booking.Amount))
	d.avail.InvalidateDay(ctx, booking.FacilityID, booking.Date)
	return booking, nil
}

func (d *bookingDomain) Cancel(ctx context.Context, bookingID, actorID uuid.UUID) (*model.Booking, error) {
	booking, err := d.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actorID {
		return nil, ErrNotAuthorized
	}
	if booking.Status == model.BookingStatusCancelled {
		return booking, nil
	}
	if !booking.Status.CanTransitionTo(model.BookingStatusCancelled) {
		return nil, ErrBookingNotPending
	}

	start, err := booking.Slot().StartTime(time.Local)
	if err != nil {
		return nil, fmt.Errorf("parse booking date: %w", err)
	}
	if time.Now().After(start.Add(-d.policy.CancelCutoff)) {
		return nil, ErrTooLateToCancel
	}

	now := time.Now()
	booking.Status = model.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.UpdatedAt = now
	if err := d.bookingDB.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	d.logger.Info("booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("actor_id", actorID.String()))

	d.publish(ctx, events.NewBookingCancelledEvent(
		booking.ID, booking.FacilityID, booking.UserID, booking.Date, booking.StartHour))
	d.avail.InvalidateDay(ctx, booking.FacilityID, booking.Date)
	return booking, nil
}

func (d *bookingDomain) Get(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	return d.findBooking(ctx, bookingID)
}

func (d *bookingDomain) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	bookings, err := d.bookingDB.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (d *bookingDomain) findBooking(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	booking, err := d.bookingDB.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// settleOwner credits the owner's share of a committed booking. Failures
// are logged for reconciliation, not propagated: the booking stands.
func (d *bookingDomain) settleOwner(ctx context.Context, booking *model.Booking) {
	if err := d.ownerDB.CreditBalance(ctx, booking.OwnerID, booking.Split.OwnerAmount); err != nil {
		d.logger.Error("owner settlement failed",
			zap.String("booking_id", booking.ID.String()),
			zap.String("owner_id", booking.OwnerID.String()),
			zap.Int64("amount", booking.Split.OwnerAmount),
			zap.Error(err))
	}
}

func (d *bookingDomain) publish(ctx context.Context, event events.Event) {
	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Error("publish event failed",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}
}

func generateReference() string {
	return fmt.Sprintf("SPH-%s-%s", time.Now().Format("20060102"), random.UpperAlphaNum(8))
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/infra/events"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"go.uber.org/zap"
)

// Webhook event types the gateway delivers.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// ProcessWebhookEvent applies one gateway webhook. The signature was
// already verified at the transport layer; this method still re-verifies
// the charge with the gateway before committing anything. Events are
// stored keyed by type and reference: redelivery of a cleanly processed
// event is a no-op, while one that failed on a transient error is
// reprocessed on the gateway's retry.
func (d *bookingDomain) ProcessWebhookEvent(ctx context.Context, eventType, reference string, payload []byte) error {
	eventID := eventType + ":" + reference

	record, err := d.webhookDB.FindByEventID(ctx, d.gateway.Name(), eventID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if record != nil && !record.Retryable() {
		d.logger.Info("webhook event already processed",
			zap.String("event_id", eventID))
		return nil
	}

	if record == nil {
		record = &model.WebhookEvent{
			ID:        uuid.New(),
			Provider:  d.gateway.Name(),
			EventID:   eventID,
			EventType: eventType,
			Reference: reference,
			Data:      string(payload),
			CreatedAt: time.Now(),
		}
		if err := d.webhookDB.Create(ctx, record); err != nil {
			return fmt.Errorf("store webhook event: %w", err)
		}
	}

	var processErr error
	switch eventType {
	case EventChargeSuccess:
		processErr = d.handleChargeSuccess(ctx, reference)
	case EventChargeFailed:
		processErr = d.handleChargeFailed(ctx, reference)
	default:
		d.logger.Debug("ignoring webhook event type",
			zap.String("event_type", eventType))
	}

	if err := d.webhookDB.MarkProcessed(ctx, record.ID, processErr); err != nil {
		d.logger.Error("mark webhook processed failed",
			zap.String("event_id", eventID),
			zap.Error(err))
	}
	return processErr
}

func (d *bookingDomain) handleChargeSuccess(ctx context.Context, reference string) error {
	booking, err := d.bookingDB.FindByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("find booking by reference: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("reference %s: %w", reference, ErrBookingNotFound)
	}
	if booking.Status == model.BookingStatusConfirmed {
		return nil
	}
	if booking.Status != model.BookingStatusPending {
		return ErrBookingNotPending
	}

	// Never trust the webhook body for money movement.
	tx, err := d.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return fmt.Errorf("verify transaction: %w", err)
	}
	if !tx.Successful() {
		return fmt.Errorf("reference %s status %s: %w", reference, tx.Status, ErrVerificationFailed)
	}
	if tx.Amount < booking.Amount {
		return fmt.Errorf("reference %s charged %d, expected %d: %w",
			reference, tx.Amount, booking.Amount, ErrAmountMismatch)
	}

	confirmed, err := d.bookingDB.ConfirmIfSlotFree(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, outbound.ErrSlotTaken) {
			return d.failBooking(ctx, booking)
		}
		return fmt.Errorf("confirm booking: %w", err)
	}

	d.logger.Info("booking confirmed by charge",
		zap.String("booking_id", confirmed.ID.String()),
		zap.String("reference", reference),
		zap.Int64("amount", tx.Amount))

	d.settleOwner(ctx, confirmed)
	d.grantCashback(ctx, confirmed)
	d.publish(ctx, events.NewBookingConfirmedEvent(
		confirmed.ID, confirmed.FacilityID, confirmed.UserID, confirmed.TeamID,
		confirmed.Date, confirmed.StartHour, confirmed.Amount))
	d.avail.InvalidateDay(ctx, confirmed.FacilityID, confirmed.Date)
	return nil
}

func (d *bookingDomain) handleChargeFailed(ctx context.Context, reference string) error {
	booking, err := d.bookingDB.FindByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("find booking by reference: %w", err)
	}
	if booking == nil || booking.Status != model.BookingStatusPending {
		return nil
	}
	return d.failBooking(ctx, booking)
}

// failBooking marks a pending booking failed. Used both for failed
// charges and for successful charges that lost the slot; the payer is
// notified downstream either way.
func (d *bookingDomain) failBooking(ctx context.Context, booking *model.Booking) error {
	now := time.Now()
	booking.Status = model.BookingStatusFailed
	booking.FailedAt = &now
	booking.UpdatedAt = now
	if err := d.bookingDB.Update(ctx, booking); err != nil {
		return fmt.Errorf("fail booking: %w", err)
	}

	d.logger.Warn("booking failed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference))

	d.publish(ctx, events.NewBookingFailedEvent(booking.ID, booking.UserID, booking.Reference))
	return nil
}

// grantCashback credits the referrer once per booking. Failures are
// logged, not propagated.
func (d *bookingDomain) grantCashback(ctx context.Context, booking *model.Booking) {
	if booking.ReferralCode == nil || *booking.ReferralCode == "" {
		return
	}

	referrer, err := d.userDB.FindByReferralCode(ctx, *booking.ReferralCode)
	if err != nil || referrer == nil {
		if err != nil {
			d.logger.Error("find referrer failed", zap.Error(err))
		}
		return
	}
	// Self-referral earns nothing.
	if referrer.ID == booking.UserID {
		return
	}

	granted, err := d.cashbackDB.ExistsForBooking(ctx, booking.ID)
	if err != nil {
		d.logger.Error("check cashback failed", zap.Error(err))
		return
	}
	if granted {
		return
	}

	if err := d.userDB.CreditWallet(ctx, referrer.ID, d.policy.ReferralCashback); err != nil {
		d.logger.Error("credit cashback failed",
			zap.String("user_id", referrer.ID.String()),
			zap.Error(err))
		return
	}
	cashback := &model.Cashback{
		ID:        uuid.New(),
		UserID:    referrer.ID,
		BookingID: booking.ID,
		Amount:    d.policy.ReferralCashback,
		CreatedAt: time.Now(),
	}
	if err := d.cashbackDB.Create(ctx, cashback); err != nil {
		d.logger.Error("record cashback failed",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err))
		return
	}

	d.logger.Info("referral cashback granted",
		zap.String("user_id", referrer.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("amount", cashback.Amount))

	d.publish(ctx, events.NewCashbackGrantedEvent(referrer.ID, booking.ID, cashback.Amount))
}

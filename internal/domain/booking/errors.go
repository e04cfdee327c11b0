package booking

import "errors"

// Booking domain errors.
var (
	// ErrBookingNotFound indicates the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrFacilityNotFound indicates the facility does not exist or is
	// inactive.
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrTeamNotFound indicates the team does not exist.
	ErrTeamNotFound = errors.New("team not found")

	// ErrSlotConflict indicates another confirmed booking won the slot.
	ErrSlotConflict = errors.New("slot already booked")

	// ErrSlotUnavailable indicates the requested slot fails the advisory
	// availability check.
	ErrSlotUnavailable = errors.New("slot not available")

	// ErrLedgerNotReady indicates the team's ledger is not fully
	// confirmed.
	ErrLedgerNotReady = errors.New("contribution ledger is not ready for payment")

	// ErrNotAuthorized indicates the actor may not act on this booking
	// or team.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrTooLateToCancel indicates the cancellation window has closed.
	ErrTooLateToCancel = errors.New("too late to cancel booking")

	// ErrBookingNotPending indicates an operation that requires a
	// pending booking.
	ErrBookingNotPending = errors.New("booking is not pending")

	// ErrAlreadyDiscounted indicates the referral discount was already
	// applied to this booking.
	ErrAlreadyDiscounted = errors.New("discount already applied")

	// ErrInsufficientWallet indicates the wallet cannot fund the
	// referral discount.
	ErrInsufficientWallet = errors.New("insufficient wallet balance")

	// ErrNoVirtualAccount indicates the facility owner has no virtual
	// collection account yet.
	ErrNoVirtualAccount = errors.New("owner has no virtual account")

	// ErrVerificationFailed indicates the gateway did not confirm the
	// charge the webhook claims.
	ErrVerificationFailed = errors.New("gateway verification failed")

	// ErrAmountMismatch indicates the verified charge is below the
	// booking amount.
	ErrAmountMismatch = errors.New("charged amount below booking amount")
)

package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusFailed    BookingStatus = "failed"
)

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a terminal state.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusFailed
}

// CanTransitionTo checks whether a transition to target is valid.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled ||
			target == BookingStatusFailed
	case BookingStatusConfirmed:
		return target == BookingStatusCancelled
	default:
		return false
	}
}

// FeeSplit is the three-way division of a charged amount among gateway
// fee, facility owner, and platform. Derived, persisted only as a
// snapshot on the booking that produced it.
type FeeSplit struct {
	BaseAmount     int64 `json:"base_amount"`
	UserPayment    int64 `json:"user_payment"`
	GatewayFee     int64 `json:"gateway_fee"`
	AmountCredited int64 `json:"amount_credited"`
	OwnerAmount    int64 `json:"owner_amount"`
	PlatformAmount int64 `json:"platform_amount"`
}

// Booking is a reservation of a facility slot, solo or team-funded.
type Booking struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	FacilityID    uuid.UUID     `json:"facility_id" gorm:"type:uuid;not null;index:idx_facility_date"`
	OwnerID       uuid.UUID     `json:"owner_id" gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	TeamID        *uuid.UUID    `json:"team_id,omitempty" gorm:"type:uuid;index"` // nil for solo bookings
	Date          string        `json:"date" gorm:"not null;index:idx_facility_date"`
	StartHour     int           `json:"start_hour" gorm:"not null"`
	DurationHours int           `json:"duration_hours" gorm:"not null"`
	Amount        int64         `json:"amount" gorm:"not null"` // gateway-inclusive charge
	Split         FeeSplit      `json:"split" gorm:"embedded;embeddedPrefix:split_"`
	Status        BookingStatus `json:"status" gorm:"not null;default:pending"`
	Reference     string        `json:"reference" gorm:"uniqueIndex"`
	ReferralCode  *string       `json:"referral_code,omitempty"`
	Discounted    bool          `json:"discounted" gorm:"not null;default:false"`
	ConfirmedAt   *time.Time    `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	FailedAt      *time.Time    `json:"failed_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Booking) TableName() string {
	return "bookings"
}

// Slot returns the booked slot.
func (b *Booking) Slot() Slot {
	return Slot{
		FacilityID:    b.FacilityID,
		Date:          b.Date,
		StartHour:     b.StartHour,
		DurationHours: b.DurationHours,
	}
}

// WebhookEvent is a stored gateway webhook event used for idempotent
// processing.
type WebhookEvent struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Provider    string     `json:"provider" gorm:"not null;uniqueIndex:idx_provider_event"`
	EventID     string     `json:"event_id" gorm:"not null;uniqueIndex:idx_provider_event"`
	EventType   string     `json:"event_type" gorm:"not null"`
	Reference   string     `json:"reference" gorm:"index"`
	Data        string     `json:"data" gorm:"type:jsonb"`
	Processed   bool       `json:"processed" gorm:"not null;default:false"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName returns the table name for GORM.
func (WebhookEvent) TableName() string {
	return "webhook_events"
}

// Retryable reports whether a redelivery of this event should be
// reprocessed rather than ignored: the first attempt either never
// finished or ended in an error.
func (e *WebhookEvent) Retryable() bool {
	return !e.Processed || e.Error != nil
}

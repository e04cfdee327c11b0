package inbound

import "github.com/gin-gonic/gin"

// BookingHttpPort defines HTTP handler interface for booking operations.
type BookingHttpPort interface {
	// CreateBooking handles POST /bookings
	// Opens a pending solo booking and returns transfer instructions.
	CreateBooking(c *gin.Context)

	// GetBooking handles GET /bookings/:id
	// Returns booking details by ID.
	GetBooking(c *gin.Context)

	// ListBookings handles GET /bookings
	// Lists bookings for the current user.
	ListBookings(c *gin.Context)

	// ApplyDiscount handles POST /bookings/:id/discount
	// Funds a referral discount from the payer's wallet.
	ApplyDiscount(c *gin.Context)

	// CancelBooking handles POST /bookings/:id/cancel
	// Cancels a booking before the cutoff.
	CancelBooking(c *gin.Context)
}

// WebhookHttpPort defines HTTP handler interface for webhook operations.
type WebhookHttpPort interface {
	// HandlePaystackWebhook handles POST /webhooks/paystack
	// Processes payment gateway webhook events.
	HandlePaystackWebhook(c *gin.Context)
}

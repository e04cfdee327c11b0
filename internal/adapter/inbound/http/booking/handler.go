// Package bookinghttp handles booking and payment webhook HTTP
// requests.
package bookinghttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sporthub/server/internal/domain/booking"
	"github.com/sporthub/server/internal/port/inbound"
	"github.com/sporthub/server/internal/utils/middleware"
)

// Handler handles booking HTTP requests.
type Handler struct {
	domain booking.BookingDomain
}

// NewHandler creates a new booking handler.
func NewHandler(domain booking.BookingDomain) *Handler {
	return &Handler{domain: domain}
}

// RegisterRoutes registers booking routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/discount", h.ApplyDiscount)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

type createBookingRequest struct {
	FacilityID    uuid.UUID `json:"facility_id" binding:"required"`
	Date          string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartHour     int       `json:"start_hour" binding:"min=0,max=23"`
	DurationHours int       `json:"duration_hours" binding:"required,min=1,max=24"`
	ReferralCode  *string   `json:"referral_code,omitempty"`
}

// CreateBooking handles POST /bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	b, account, err := h.domain.CreateBooking(c.Request.Context(), identity.UserID, booking.SoloParams{
		FacilityID:    req.FacilityID,
		Date:          req.Date,
		StartHour:     req.StartHour,
		DurationHours: req.DurationHours,
		ReferralCode:  req.ReferralCode,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":          b,
		"transfer_account": account,
	})
}

// GetBooking handles GET /bookings/:id.
func (h *Handler) GetBooking(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	bookingID, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.domain.Get(c.Request.Context(), bookingID)
	if err != nil {
		handleError(c, err)
		return
	}
	if b.UserID != identity.UserID {
		handleError(c, booking.ErrNotAuthorized)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ListBookings handles GET /bookings.
func (h *Handler) ListBookings(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	bookings, err := h.domain.ListByUser(c.Request.Context(), identity.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ApplyDiscount handles POST /bookings/:id/discount.
func (h *Handler) ApplyDiscount(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	bookingID, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.domain.ApplyDiscount(c.Request.Context(), bookingID, identity.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// CancelBooking handles POST /bookings/:id/cancel.
func (h *Handler) CancelBooking(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	bookingID, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.domain.Cancel(c.Request.Context(), bookingID, identity.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// Compile-time check
var _ inbound.BookingHttpPort = (*Handler)(nil)

package teamhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sporthub/server/internal/domain/booking"
	"github.com/sporthub/server/internal/domain/ledger"
	"github.com/sporthub/server/internal/port/inbound"
	"github.com/sporthub/server/internal/utils/middleware"
)

// LedgerHandler handles contribution ledger HTTP requests. Routes hang
// off the team resource since a ledger is one-to-one with its team.
type LedgerHandler struct {
	ledgers  ledger.LedgerDomain
	bookings booking.BookingDomain
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(ledgers ledger.LedgerDomain, bookings booking.BookingDomain) *LedgerHandler {
	return &LedgerHandler{ledgers: ledgers, bookings: bookings}
}

// RegisterRoutes registers ledger routes.
func (h *LedgerHandler) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	{
		teams.POST("/:id/ledger", h.OpenLedger)
		teams.GET("/:id/ledger", h.GetLedger)
		teams.POST("/:id/ledger/confirm", h.ConfirmContribution)
		teams.POST("/:id/finalize", h.FinalizeTeam)
	}
}

// OpenLedger handles POST /teams/:id/ledger.
func (h *LedgerHandler) OpenLedger(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	teamID, ok := parseID(c)
	if !ok {
		return
	}

	l, err := h.ledgers.Open(c.Request.Context(), teamID, identity.UserID)
	if err != nil {
		handleLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, l)
}

// GetLedger handles GET /teams/:id/ledger.
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	teamID, ok := parseID(c)
	if !ok {
		return
	}

	l, err := h.ledgers.GetByTeam(c.Request.Context(), teamID)
	if err != nil {
		handleLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// ConfirmContribution handles POST /teams/:id/ledger/confirm.
func (h *LedgerHandler) ConfirmContribution(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	teamID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		MemberID uuid.UUID `json:"member_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	l, err := h.ledgers.GetByTeam(c.Request.Context(), teamID)
	if err != nil {
		handleLedgerError(c, err)
		return
	}

	l, err = h.ledgers.Confirm(c.Request.Context(), l.ID, req.MemberID, identity.UserID)
	if err != nil {
		handleLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// FinalizeTeam handles POST /teams/:id/finalize.
func (h *LedgerHandler) FinalizeTeam(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	teamID, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.bookings.Finalize(c.Request.Context(), teamID, identity.UserID)
	if err != nil {
		handleBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// Compile-time check
var _ inbound.LedgerHttpPort = (*LedgerHandler)(nil)

// Package facilityhttp handles facility catalogue and availability
// HTTP requests.
package facilityhttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sporthub/server/internal/domain/availability"
	"github.com/sporthub/server/internal/domain/facility"
	"github.com/sporthub/server/internal/port/inbound"
	apperrors "github.com/sporthub/server/internal/shared/errors"
)

// Handler handles facility HTTP requests.
type Handler struct {
	facilities facility.FacilityDomain
	avail      availability.AvailabilityDomain
}

// NewHandler creates a new facility handler.
func NewHandler(facilities facility.FacilityDomain, avail availability.AvailabilityDomain) *Handler {
	return &Handler{facilities: facilities, avail: avail}
}

// RegisterRoutes registers facility routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	facilities := r.Group("/facilities")
	{
		facilities.GET("", h.ListFacilities)
		facilities.GET("/:id", h.GetFacility)
		facilities.GET("/:id/availability", h.GetAvailability)
		facilities.GET("/:id/quote", h.GetQuote)
	}
}

// ListFacilities handles GET /facilities.
func (h *Handler) ListFacilities(c *gin.Context) {
	facilities, err := h.facilities.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

// GetFacility handles GET /facilities/:id.
func (h *Handler) GetFacility(c *gin.Context) {
	facilityID, ok := parseID(c)
	if !ok {
		return
	}

	f, err := h.facilities.Get(c.Request.Context(), facilityID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, f)
}

// GetAvailability handles GET /facilities/:id/availability.
func (h *Handler) GetAvailability(c *gin.Context) {
	facilityID, ok := parseID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondValidation(c, "date must be YYYY-MM-DD")
		return
	}

	schedule, err := h.avail.GetDaySchedule(c.Request.Context(), facilityID, date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// GetQuote handles GET /facilities/:id/quote.
func (h *Handler) GetQuote(c *gin.Context) {
	facilityID, ok := parseID(c)
	if !ok {
		return
	}

	hours, err := strconv.Atoi(c.DefaultQuery("hours", "1"))
	if err != nil {
		respondValidation(c, "hours must be an integer")
		return
	}

	quote, err := h.facilities.QuoteSlot(c.Request.Context(), facilityID, hours)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "invalid facility id")
		return uuid.Nil, false
	}
	return id, true
}

func respondValidation(c *gin.Context, message string) {
	appErr := apperrors.Validation(message)
	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

// Compile-time check
var _ inbound.FacilityHttpPort = (*Handler)(nil)

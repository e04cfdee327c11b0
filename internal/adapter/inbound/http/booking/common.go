package bookinghttp

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sporthub/server/internal/domain/availability"
	"github.com/sporthub/server/internal/domain/booking"
	apperrors "github.com/sporthub/server/internal/shared/errors"
)

// handleError maps booking domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		appErr = apperrors.NotFound("booking")

	case errors.Is(err, booking.ErrFacilityNotFound):
		appErr = apperrors.NotFound("facility")

	case errors.Is(err, booking.ErrTeamNotFound):
		appErr = apperrors.NotFound("team")

	case errors.Is(err, booking.ErrNotAuthorized):
		appErr = apperrors.Forbidden("not your booking")

	case errors.Is(err, booking.ErrSlotConflict),
		errors.Is(err, booking.ErrSlotUnavailable):
		appErr = apperrors.Conflict("slot is not available")

	case errors.Is(err, booking.ErrLedgerNotReady):
		appErr = apperrors.Conflict("ledger is not fully confirmed")

	case errors.Is(err, booking.ErrTooLateToCancel):
		appErr = apperrors.Conflict("past the cancellation cutoff")

	case errors.Is(err, booking.ErrBookingNotPending):
		appErr = apperrors.Conflict("booking is not pending")

	case errors.Is(err, booking.ErrAlreadyDiscounted):
		appErr = apperrors.Conflict("discount already applied")

	case errors.Is(err, booking.ErrInsufficientWallet):
		appErr = apperrors.Validation("insufficient wallet balance")

	case errors.Is(err, booking.ErrNoVirtualAccount):
		appErr = apperrors.Conflict("facility owner has no collection account")

	case errors.Is(err, availability.ErrInvalidDuration),
		errors.Is(err, availability.ErrInsufficientOperatingWindow):
		appErr = apperrors.Validation("slot outside operating hours")

	default:
		appErr = apperrors.Internal("internal server error", err)
	}

	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "invalid booking id")
		return uuid.Nil, false
	}
	return id, true
}

func respondValidation(c *gin.Context, message string) {
	appErr := apperrors.Validation(message)
	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

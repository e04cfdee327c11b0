package facilityhttp

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sporthub/server/internal/domain/availability"
	"github.com/sporthub/server/internal/domain/facility"
	apperrors "github.com/sporthub/server/internal/shared/errors"
)

// handleError maps facility domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, facility.ErrFacilityNotFound),
		errors.Is(err, availability.ErrFacilityNotFound):
		appErr = apperrors.NotFound("facility")

	case errors.Is(err, facility.ErrInvalidDuration),
		errors.Is(err, availability.ErrInvalidDuration):
		appErr = apperrors.Validation("invalid slot duration")

	case errors.Is(err, availability.ErrInsufficientOperatingWindow):
		appErr = apperrors.Validation("slot outside operating hours")

	default:
		appErr = apperrors.Internal("internal server error", err)
	}

	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

package teamhttp

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sporthub/server/internal/domain/booking"
	"github.com/sporthub/server/internal/domain/ledger"
	"github.com/sporthub/server/internal/domain/team"
	apperrors "github.com/sporthub/server/internal/shared/errors"
)

// handleError maps team domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, team.ErrTeamNotFound):
		appErr = apperrors.NotFound("team")

	case errors.Is(err, team.ErrFacilityNotFound):
		appErr = apperrors.NotFound("facility")

	case errors.Is(err, team.ErrNotCreator):
		appErr = apperrors.Forbidden("only the team creator may do this")

	case errors.Is(err, team.ErrTeamFull):
		appErr = apperrors.Conflict("team is full")

	case errors.Is(err, team.ErrAlreadyMember):
		appErr = apperrors.Conflict("already a member of this team")

	case errors.Is(err, team.ErrDeadlinePassed),
		errors.Is(err, team.ErrTeamExpired):
		appErr = apperrors.Conflict("team deadline has passed")

	case errors.Is(err, team.ErrTeamNotRecruiting):
		appErr = apperrors.Conflict("team is no longer recruiting")

	case errors.Is(err, team.ErrTeamCompleted):
		appErr = apperrors.Conflict("team has already booked")

	case errors.Is(err, team.ErrInvalidMaxPlayers),
		errors.Is(err, team.ErrInvalidDeadline),
		errors.Is(err, team.ErrInvalidTotalCost):
		appErr = apperrors.Validation(err.Error())

	default:
		appErr = apperrors.Internal("internal server error", err)
	}

	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

// handleLedgerError maps ledger domain errors to HTTP responses.
func handleLedgerError(c *gin.Context, err error) {
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, ledger.ErrLedgerNotFound):
		appErr = apperrors.NotFound("ledger")

	case errors.Is(err, ledger.ErrLedgerExists):
		appErr = apperrors.Conflict("ledger already opened")

	case errors.Is(err, ledger.ErrNotAuthorized):
		appErr = apperrors.Forbidden("only the team creator may do this")

	case errors.Is(err, ledger.ErrUnknownMember):
		appErr = apperrors.NotFound("team member")

	case errors.Is(err, ledger.ErrTeamNotRecruiting):
		appErr = apperrors.Conflict("team is not collecting members")

	case errors.Is(err, ledger.ErrTeamExpired):
		appErr = apperrors.Conflict("team deadline has passed")

	case errors.Is(err, team.ErrTeamNotFound):
		appErr = apperrors.NotFound("team")

	default:
		appErr = apperrors.Internal("internal server error", err)
	}

	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

// handleBookingError maps finalize errors to HTTP responses.
func handleBookingError(c *gin.Context, err error) {
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, booking.ErrTeamNotFound):
		appErr = apperrors.NotFound("team")

	case errors.Is(err, booking.ErrFacilityNotFound):
		appErr = apperrors.NotFound("facility")

	case errors.Is(err, booking.ErrNotAuthorized):
		appErr = apperrors.Forbidden("only the team creator may finalize")

	case errors.Is(err, booking.ErrLedgerNotReady):
		appErr = apperrors.Conflict("ledger is not fully confirmed")

	case errors.Is(err, booking.ErrSlotConflict),
		errors.Is(err, booking.ErrSlotUnavailable):
		appErr = apperrors.Conflict("slot is not available")

	default:
		appErr = apperrors.Internal("internal server error", err)
	}

	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "invalid team id")
		return uuid.Nil, false
	}
	return id, true
}

func respondValidation(c *gin.Context, message string) {
	appErr := apperrors.Validation(message)
	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

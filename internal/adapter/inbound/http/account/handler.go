// Package accounthttp handles owner collection-account HTTP requests.
package accounthttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sporthub/server/internal/domain/account"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/inbound"
	apperrors "github.com/sporthub/server/internal/shared/errors"
	"github.com/sporthub/server/internal/utils/middleware"
)

// Handler handles owner account HTTP requests.
type Handler struct {
	domain account.AccountDomain
}

// NewHandler creates a new owner account handler.
func NewHandler(domain account.AccountDomain) *Handler {
	return &Handler{domain: domain}
}

// RegisterRoutes registers owner account routes. The group must already
// enforce the owner role.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	owners := r.Group("/owners")
	owners.Use(middleware.RequireRole(model.RoleOwner))
	{
		owners.POST("/virtual-account", h.IssueVirtualAccount)
		owners.GET("/virtual-account", h.GetVirtualAccount)
	}
}

// IssueVirtualAccount handles POST /owners/virtual-account.
func (h *Handler) IssueVirtualAccount(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	va, err := h.domain.IssueVirtualAccount(c.Request.Context(), identity.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, va)
}

// GetVirtualAccount handles GET /owners/virtual-account.
func (h *Handler) GetVirtualAccount(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	va, err := h.domain.GetVirtualAccount(c.Request.Context(), identity.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, va)
}

// handleError maps account domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, account.ErrOwnerNotFound):
		appErr = apperrors.NotFound("owner")

	case errors.Is(err, account.ErrNoVirtualAccount):
		appErr = apperrors.NotFound("virtual account")

	default:
		appErr = apperrors.Internal("internal server error", err)
	}

	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

// Compile-time check
var _ inbound.AccountHttpPort = (*Handler)(nil)

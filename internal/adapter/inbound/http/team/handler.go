// Package teamhttp handles team and contribution ledger HTTP requests.
package teamhttp

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sporthub/server/internal/domain/team"
	"github.com/sporthub/server/internal/port/inbound"
	"github.com/sporthub/server/internal/utils/middleware"
)

// Handler handles team HTTP requests.
type Handler struct {
	domain team.TeamDomain
}

// NewHandler creates a new team handler.
func NewHandler(domain team.TeamDomain) *Handler {
	return &Handler{domain: domain}
}

// RegisterRoutes registers team routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	{
		teams.POST("", h.CreateTeam)
		teams.GET("", h.ListTeams)
		teams.GET("/open", h.ListOpenTeams)
		teams.POST("/join", h.JoinByCode)
		teams.GET("/:id", h.GetTeam)
		teams.POST("/:id/join", h.JoinTeam)
		teams.POST("/:id/cancel", h.CancelTeam)
	}
}

type createTeamRequest struct {
	Name          string    `json:"name"`
	FacilityID    uuid.UUID `json:"facility_id" binding:"required"`
	Date          string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartHour     int       `json:"start_hour" binding:"min=0,max=23"`
	DurationHours int       `json:"duration_hours" binding:"required,min=1,max=24"`
	MaxPlayers    int       `json:"max_players" binding:"required,min=2"`
	TotalCost     int64     `json:"total_cost" binding:"required,min=1"`
	Deadline      time.Time `json:"deadline" binding:"required"`
}

// CreateTeam handles POST /teams.
func (h *Handler) CreateTeam(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	t, err := h.domain.Create(c.Request.Context(), identity.UserID, team.CreateParams{
		Name:          req.Name,
		FacilityID:    req.FacilityID,
		Date:          req.Date,
		StartHour:     req.StartHour,
		DurationHours: req.DurationHours,
		MaxPlayers:    req.MaxPlayers,
		TotalCost:     req.TotalCost,
		Deadline:      req.Deadline,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// GetTeam handles GET /teams/:id.
func (h *Handler) GetTeam(c *gin.Context) {
	teamID, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.domain.Get(c.Request.Context(), teamID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// ListTeams handles GET /teams.
func (h *Handler) ListTeams(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	teams, err := h.domain.ListByMember(c.Request.Context(), identity.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// ListOpenTeams handles GET /teams/open.
func (h *Handler) ListOpenTeams(c *gin.Context) {
	teams, err := h.domain.ListOpen(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// JoinTeam handles POST /teams/:id/join.
func (h *Handler) JoinTeam(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	teamID, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.domain.Join(c.Request.Context(), teamID, identity.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// JoinByCode handles POST /teams/join.
func (h *Handler) JoinByCode(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var req struct {
		JoinCode string `json:"join_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	t, err := h.domain.JoinByCode(c.Request.Context(), req.JoinCode, identity.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// CancelTeam handles POST /teams/:id/cancel.
func (h *Handler) CancelTeam(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	teamID, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.domain.Cancel(c.Request.Context(), teamID, identity.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Compile-time check
var _ inbound.TeamHttpPort = (*Handler)(nil)

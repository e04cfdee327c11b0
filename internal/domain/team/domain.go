// Package team manages the lifecycle of booking teams: creation,
// recruitment through join codes, and lazy deadline expiry. Expiry is
// evaluated at every entry point that reads or mutates a team; there is
// no background sweeper.
package team

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/infra/events"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"github.com/sporthub/server/internal/utils/random"
	"go.uber.org/zap"
)

// CreateParams collects the inputs for opening a team.
type CreateParams struct {
	Name          string
	FacilityID    uuid.UUID
	Date          string
	StartHour     int
	DurationHours int
	MaxPlayers    int
	TotalCost     int64
	Deadline      time.Time
}

// TeamDomain defines the interface for team business logic.
type TeamDomain interface {
	// Create opens a new team with the creator enrolled as its first
	// member.
	Create(ctx context.Context, creatorID uuid.UUID, params CreateParams) (*model.Team, error)

	// Join enrolls an identity into a recruiting team.
	Join(ctx context.Context, teamID, userID uuid.UUID) (*model.Team, error)

	// JoinByCode enrolls an identity via the team's join code.
	JoinByCode(ctx context.Context, code string, userID uuid.UUID) (*model.Team, error)

	// Get returns a team, lazily expiring it first.
	Get(ctx context.Context, teamID uuid.UUID) (*model.Team, error)

	// ListByMember lists teams the user belongs to.
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*model.Team, error)

	// ListOpen lists teams currently recruiting.
	ListOpen(ctx context.Context) ([]*model.Team, error)

	// Cancel cancels a team. Creator only; completed teams cannot be
	// cancelled. Idempotent on an already cancelled team.
	Cancel(ctx context.Context, teamID, actorID uuid.UUID) (*model.Team, error)
}

type teamDomain struct {
	teamDB     outbound.TeamDatabasePort
	memberDB   outbound.TeamMemberDatabasePort
	facilityDB outbound.FacilityDatabasePort
	publisher  outbound.EventPublisherPort
	logger     *zap.Logger
}

// NewTeamDomain creates a new team domain service.
func NewTeamDomain(
	teamDB outbound.TeamDatabasePort,
	memberDB outbound.TeamMemberDatabasePort,
	facilityDB outbound.FacilityDatabasePort,
	publisher outbound.EventPublisherPort,
	logger *zap.Logger,
) TeamDomain {
	return &teamDomain{
		teamDB:     teamDB,
		memberDB:   memberDB,
		facilityDB: facilityDB,
		publisher:  publisher,
		logger:     logger,
	}
}

func (d *teamDomain) Create(ctx context.Context, creatorID uuid.UUID, params CreateParams) (*model.Team, error) {
	if params.MaxPlayers < 2 {
		return nil, ErrInvalidMaxPlayers
	}
	if !params.Deadline.After(time.Now()) {
		return nil, ErrInvalidDeadline
	}
	if params.TotalCost <= 0 {
		return nil, ErrInvalidTotalCost
	}

	facility, err := d.facilityDB.FindByID(ctx, params.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("find facility: %w", err)
	}
	if facility == nil || !facility.IsActive {
		return nil, fmt.Errorf("facility %s: %w", params.FacilityID, ErrFacilityNotFound)
	}

	now := time.Now()
	team := &model.Team{
		ID:            uuid.New(),
		CreatorID:     creatorID,
		FacilityID:    params.FacilityID,
		Name:          params.Name,
		Date:          params.Date,
		StartHour:     params.StartHour,
		DurationHours: params.DurationHours,
		MaxPlayers:    params.MaxPlayers,
		TotalCost:     params.TotalCost,
		Status:        model.TeamStatusRecruiting,
		Deadline:      params.Deadline,
		JoinCode:      generateJoinCode(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := d.teamDB.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	creator := &model.TeamMember{
		ID:        uuid.New(),
		TeamID:    team.ID,
		UserID:    creatorID,
		IsCreator: true,
		JoinedAt:  now,
	}
	if err := d.memberDB.Create(ctx, creator); err != nil {
		return nil, fmt.Errorf("enroll creator: %w", err)
	}
	team.Members = []model.TeamMember{*creator}

	d.logger.Info("team created",
		zap.String("team_id", team.ID.String()),
		zap.String("creator_id", creatorID.String()),
		zap.Int("max_players", team.MaxPlayers),
		zap.Time("deadline", team.Deadline))

	d.publish(ctx, events.NewTeamCreatedEvent(
		team.ID, creatorID, team.FacilityID, team.JoinCode, team.MaxPlayers))
	return team, nil
}

func (d *teamDomain) Join(ctx context.Context, teamID, userID uuid.UUID) (*model.Team, error) {
	team, err := d.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return d.join(ctx, team, userID)
}

func (d *teamDomain) JoinByCode(ctx context.Context, code string, userID uuid.UUID) (*model.Team, error) {
	team, err := d.teamDB.FindByJoinCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find team by code: %w", err)
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	return d.join(ctx, team, userID)
}

func (d *teamDomain) join(ctx context.Context, team *model.Team, userID uuid.UUID) (*model.Team, error) {
	if team.Status == model.TeamStatusExpired {
		return nil, ErrTeamExpired
	}
	if expired, err := d.lazyExpire(ctx, team); err != nil {
		return nil, err
	} else if expired {
		return nil, ErrDeadlinePassed
	}
	if team.Status != model.TeamStatusRecruiting {
		return nil, ErrTeamNotRecruiting
	}
	if team.HasMember(userID) {
		return nil, ErrAlreadyMember
	}
	if team.IsFull() {
		return nil, ErrTeamFull
	}

	member := &model.TeamMember{
		ID:       uuid.New(),
		TeamID:   team.ID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := d.memberDB.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("enroll member: %w", err)
	}
	team.Members = append(team.Members, *member)

	d.logger.Info("member joined team",
		zap.String("team_id", team.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("member_count", len(team.Members)))

	d.publish(ctx, events.NewTeamMemberJoinedEvent(
		team.ID, userID, len(team.Members), team.MaxPlayers))
	return team, nil
}

func (d *teamDomain) Get(ctx context.Context, teamID uuid.UUID) (*model.Team, error) {
	team, err := d.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if _, err := d.lazyExpire(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (d *teamDomain) ListByMember(ctx context.Context, userID uuid.UUID) ([]*model.Team, error) {
	teams, err := d.teamDB.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams by member: %w", err)
	}
	return teams, nil
}

func (d *teamDomain) ListOpen(ctx context.Context) ([]*model.Team, error) {
	teams, err := d.teamDB.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open teams: %w", err)
	}
	// Past-deadline teams may still carry a recruiting status until a
	// mutation touches them; filter them out of the listing.
	now := time.Now()
	open := teams[:0]
	for _, t := range teams {
		if !t.IsPastDeadline(now) {
			open = append(open, t)
		}
	}
	return open, nil
}

func (d *teamDomain) Cancel(ctx context.Context, teamID, actorID uuid.UUID) (*model.Team, error) {
	team, err := d.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.CreatorID != actorID {
		return nil, ErrNotCreator
	}
	if team.Status == model.TeamStatusCancelled {
		return team, nil
	}
	if team.Status == model.TeamStatusCompleted {
		return nil, ErrTeamCompleted
	}
	if team.Status == model.TeamStatusExpired {
		return nil, ErrTeamExpired
	}

	team.Status = model.TeamStatusCancelled
	team.UpdatedAt = time.Now()
	if err := d.teamDB.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("cancel team: %w", err)
	}

	d.logger.Info("team cancelled",
		zap.String("team_id", team.ID.String()),
		zap.String("actor_id", actorID.String()))
	return team, nil
}

func (d *teamDomain) findTeam(ctx context.Context, teamID uuid.UUID) (*model.Team, error) {
	team, err := d.teamDB.FindByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	return team, nil
}

// lazyExpire transitions a past-deadline recruiting team to expired and
// persists the change. Teams whose ledger is already fully confirmed
// keep their ready_for_payment status: the funds are in, only
// recruitment is deadline-bound.
func (d *teamDomain) lazyExpire(ctx context.Context, team *model.Team) (bool, error) {
	if team.Status != model.TeamStatusRecruiting {
		return team.Status == model.TeamStatusExpired, nil
	}
	if !team.IsPastDeadline(time.Now()) {
		return false, nil
	}

	team.Status = model.TeamStatusExpired
	team.UpdatedAt = time.Now()
	if err := d.teamDB.Update(ctx, team); err != nil {
		return false, fmt.Errorf("expire team: %w", err)
	}

	d.logger.Info("team expired",
		zap.String("team_id", team.ID.String()),
		zap.Time("deadline", team.Deadline))
	return true, nil
}

func (d *teamDomain) publish(ctx context.Context, event events.Event) {
	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Error("publish event failed",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}
}

func generateJoinCode() string {
	return random.UpperAlphaNum(6)
}

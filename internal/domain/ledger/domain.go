// Package ledger tracks who owes what for a team's booking. Shares are
// ceil-divided by the team's configured capacity, so the sum collected
// can exceed the total; the surplus is retained, never redistributed.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/infra/events"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"go.uber.org/zap"
)

// LedgerDomain defines the interface for contribution ledger business logic.
type LedgerDomain interface {
	// Open creates the ledger for a team with one contribution per
	// current member. Creator only; one ledger per team.
	Open(ctx context.Context, teamID, actorID uuid.UUID) (*model.ContributionLedger, error)

	// Confirm marks a member's contribution as received. Creator only;
	// idempotent on an already confirmed contribution. When the last
	// pending contribution confirms, the ledger and its team both move
	// to ready_for_payment.
	Confirm(ctx context.Context, ledgerID, memberID, confirmerID uuid.UUID) (*model.ContributionLedger, error)

	// Get returns a ledger by ID.
	Get(ctx context.Context, ledgerID uuid.UUID) (*model.ContributionLedger, error)

	// GetByTeam returns the ledger opened for a team.
	GetByTeam(ctx context.Context, teamID uuid.UUID) (*model.ContributionLedger, error)
}

type ledgerDomain struct {
	ledgerDB  outbound.LedgerDatabasePort
	teamDB    outbound.TeamDatabasePort
	publisher outbound.EventPublisherPort
	logger    *zap.Logger
}

// NewLedgerDomain creates a new ledger domain service.
func NewLedgerDomain(
	ledgerDB outbound.LedgerDatabasePort,
	teamDB outbound.TeamDatabasePort,
	publisher outbound.EventPublisherPort,
	logger *zap.Logger,
) LedgerDomain {
	return &ledgerDomain{
		ledgerDB:  ledgerDB,
		teamDB:    teamDB,
		publisher: publisher,
		logger:    logger,
	}
}

// RequiredShare is each member's share of the total: ceil division by
// the team's configured capacity. The divisor is capacity, not the
// enrolled head count, so a short-handed team still covers the total.
func RequiredShare(total int64, maxPlayers int) int64 {
	n := int64(maxPlayers)
	return (total + n - 1) / n
}

func (d *ledgerDomain) Open(ctx context.Context, teamID, actorID uuid.UUID) (*model.ContributionLedger, error) {
	team, err := d.teamDB.FindByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", teamID, ErrLedgerNotFound)
	}
	if team.CreatorID != actorID {
		return nil, ErrNotAuthorized
	}
	if team.Status != model.TeamStatusRecruiting {
		return nil, ErrTeamNotRecruiting
	}
	if team.IsPastDeadline(time.Now()) {
		return nil, ErrTeamExpired
	}

	existing, err := d.ledgerDB.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("find ledger: %w", err)
	}
	if existing != nil {
		return nil, ErrLedgerExists
	}

	share := RequiredShare(team.TotalCost, team.MaxPlayers)
	now := time.Now()
	ledger := &model.ContributionLedger{
		ID:            uuid.New(),
		TeamID:        teamID,
		Total:         team.TotalCost,
		RequiredShare: share,
		Status:        model.LedgerStatusCollecting,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, m := range team.Members {
		ledger.Contributions = append(ledger.Contributions, model.Contribution{
			ID:        uuid.New(),
			LedgerID:  ledger.ID,
			MemberID:  m.UserID,
			Required:  share,
			Status:    model.ContributionStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := d.ledgerDB.Create(ctx, ledger); err != nil {
		return nil, fmt.Errorf("create ledger: %w", err)
	}

	d.logger.Info("ledger opened",
		zap.String("ledger_id", ledger.ID.String()),
		zap.String("team_id", teamID.String()),
		zap.Int64("required_share", share),
		zap.Int("contributions", len(ledger.Contributions)))
	return ledger, nil
}

func (d *ledgerDomain) Confirm(ctx context.Context, ledgerID, memberID, confirmerID uuid.UUID) (*model.ContributionLedger, error) {
	ledger, err := d.findLedger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	team, err := d.teamDB.FindByID(ctx, ledger.TeamID)
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", ledger.TeamID, ErrLedgerNotFound)
	}
	if team.CreatorID != confirmerID {
		return nil, ErrNotAuthorized
	}
	if team.Status == model.TeamStatusExpired {
		return nil, ErrTeamExpired
	}
	if team.Status == model.TeamStatusRecruiting && team.IsPastDeadline(time.Now()) {
		// Recruitment is deadline-bound; a lapse unnoticed by any team
		// operation expires the team here just the same.
		team.Status = model.TeamStatusExpired
		team.UpdatedAt = time.Now()
		if err := d.teamDB.Update(ctx, team); err != nil {
			return nil, fmt.Errorf("expire team: %w", err)
		}
		return nil, ErrTeamExpired
	}

	contribution := ledger.FindContribution(memberID)
	if contribution == nil {
		return nil, ErrUnknownMember
	}
	if contribution.Status == model.ContributionStatusConfirmed {
		// Confirming twice is a no-op, not an error.
		return ledger, nil
	}

	now := time.Now()
	contribution.Status = model.ContributionStatusConfirmed
	contribution.ConfirmedAt = &now
	contribution.ConfirmedBy = &confirmerID
	contribution.UpdatedAt = now
	ledger.Status = ledger.DeriveStatus()
	ledger.UpdatedAt = now

	if err := d.ledgerDB.Update(ctx, ledger); err != nil {
		return nil, fmt.Errorf("update ledger: %w", err)
	}

	d.logger.Info("contribution confirmed",
		zap.String("ledger_id", ledger.ID.String()),
		zap.String("member_id", memberID.String()),
		zap.Int("confirmed", ledger.ConfirmedCount()),
		zap.Int("total", len(ledger.Contributions)))

	if ledger.Status == model.LedgerStatusReadyForPayment {
		if err := d.markTeamReady(ctx, team, ledger); err != nil {
			return nil, err
		}
	}
	return ledger, nil
}

func (d *ledgerDomain) Get(ctx context.Context, ledgerID uuid.UUID) (*model.ContributionLedger, error) {
	return d.findLedger(ctx, ledgerID)
}

func (d *ledgerDomain) GetByTeam(ctx context.Context, teamID uuid.UUID) (*model.ContributionLedger, error) {
	ledger, err := d.ledgerDB.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("find ledger by team: %w", err)
	}
	if ledger == nil {
		return nil, ErrLedgerNotFound
	}
	return ledger, nil
}

func (d *ledgerDomain) findLedger(ctx context.Context, ledgerID uuid.UUID) (*model.ContributionLedger, error) {
	ledger, err := d.ledgerDB.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("find ledger: %w", err)
	}
	if ledger == nil {
		return nil, ErrLedgerNotFound
	}
	return ledger, nil
}

func (d *ledgerDomain) markTeamReady(ctx context.Context, team *model.Team, ledger *model.ContributionLedger) error {
	if !team.Status.CanTransitionTo(model.TeamStatusReadyForPayment) {
		return nil
	}
	team.Status = model.TeamStatusReadyForPayment
	team.UpdatedAt = time.Now()
	if err := d.teamDB.Update(ctx, team); err != nil {
		return fmt.Errorf("mark team ready: %w", err)
	}

	d.logger.Info("team ready for payment",
		zap.String("team_id", team.ID.String()),
		zap.String("ledger_id", ledger.ID.String()))

	if d.publisher != nil {
		event := events.NewTeamReadyForPaymentEvent(team.ID, ledger.ID, ledger.Total)
		if err := d.publisher.Publish(ctx, event); err != nil {
			d.logger.Error("publish event failed",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	return nil
}

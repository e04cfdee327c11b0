package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
)

// LedgerDatabasePort defines contribution ledger persistence operations.
type LedgerDatabasePort interface {
	// Create creates a ledger with its contribution rows.
	Create(ctx context.Context, ledger *model.ContributionLedger) error

	// FindByID finds a ledger by ID, contributions preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*model.ContributionLedger, error)

	// FindByTeamID finds the ledger opened for a team, contributions
	// preloaded.
	FindByTeamID(ctx context.Context, teamID uuid.UUID) (*model.ContributionLedger, error)

	// Update updates the ledger and its contribution rows.
	Update(ctx context.Context, ledger *model.ContributionLedger) error
}

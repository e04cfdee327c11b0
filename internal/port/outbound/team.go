package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
)

// TeamDatabasePort defines team persistence operations.
type TeamDatabasePort interface {
	// Create creates a new team record.
	Create(ctx context.Context, team *model.Team) error

	// FindByID finds a team by ID, members preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error)

	// FindByJoinCode finds a team by its join code, members preloaded.
	FindByJoinCode(ctx context.Context, code string) (*model.Team, error)

	// ListByMember lists teams a user belongs to, newest first.
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*model.Team, error)

	// ListOpen lists recruiting teams, newest first.
	ListOpen(ctx context.Context) ([]*model.Team, error)

	// Update updates a team record.
	Update(ctx context.Context, team *model.Team) error
}

// TeamMemberDatabasePort defines team membership persistence operations.
type TeamMemberDatabasePort interface {
	// Create creates a new membership record.
	Create(ctx context.Context, member *model.TeamMember) error

	// Delete removes a membership record.
	Delete(ctx context.Context, teamID, userID uuid.UUID) error

	// CountByTeam counts members of a team.
	CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
}

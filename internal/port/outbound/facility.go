package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
)

// FacilityDatabasePort defines facility persistence operations.
type FacilityDatabasePort interface {
	// Create creates a new facility record.
	Create(ctx context.Context, facility *model.Facility) error

	// FindByID finds a facility by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Facility, error)

	// ListByOwner lists facilities belonging to an owner.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Facility, error)

	// ListActive lists active facilities.
	ListActive(ctx context.Context) ([]*model.Facility, error)

	// Update updates a facility record.
	Update(ctx context.Context, facility *model.Facility) error
}

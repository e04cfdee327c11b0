package outbound

import (
	"context"

	"github.com/google/uuid"
)

// AvailabilityCachePort caches per-facility, per-date availability
// snapshots. The cache is advisory: booking commits never consult it,
// only the read path does.
type AvailabilityCachePort interface {
	// GetSnapshot returns the cached snapshot, or nil on a miss.
	GetSnapshot(ctx context.Context, facilityID uuid.UUID, date string) ([]byte, error)

	// SetSnapshot stores a snapshot under the configured TTL.
	SetSnapshot(ctx context.Context, facilityID uuid.UUID, date string, snapshot []byte) error

	// Invalidate drops the snapshot for a facility and date.
	Invalidate(ctx context.Context, facilityID uuid.UUID, date string) error
}

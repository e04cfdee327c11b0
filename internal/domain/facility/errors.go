package facility

import "errors"

var (
	// ErrFacilityNotFound is returned when a facility does not exist or
	// is inactive.
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrInvalidDuration is returned for non-positive or oversized
	// durations.
	ErrInvalidDuration = errors.New("invalid duration")
)

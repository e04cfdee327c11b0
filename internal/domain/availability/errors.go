package availability

import "errors"

// Availability domain errors.
var (
	// ErrInvalidDuration indicates a duration below one whole hour.
	ErrInvalidDuration = errors.New("duration must be at least one hour")

	// ErrInsufficientOperatingWindow indicates the requested slot falls
	// outside the facility's operating hours.
	ErrInsufficientOperatingWindow = errors.New("slot outside facility operating window")

	// ErrFacilityNotFound indicates the facility does not exist or is
	// inactive.
	ErrFacilityNotFound = errors.New("facility not found")
)

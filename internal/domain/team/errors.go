package team

import "errors"

// Team domain errors.
var (
	// ErrTeamNotFound indicates the team does not exist.
	ErrTeamNotFound = errors.New("team not found")

	// ErrFacilityNotFound indicates the facility does not exist or is
	// inactive.
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrInvalidMaxPlayers indicates a capacity below two.
	ErrInvalidMaxPlayers = errors.New("max players must be at least 2")

	// ErrInvalidDeadline indicates a deadline that is not strictly in
	// the future.
	ErrInvalidDeadline = errors.New("deadline must be in the future")

	// ErrInvalidTotalCost indicates a non-positive total cost.
	ErrInvalidTotalCost = errors.New("total cost must be positive")

	// ErrTeamFull indicates the team is at capacity.
	ErrTeamFull = errors.New("team is full")

	// ErrAlreadyMember indicates the identity is already enrolled.
	ErrAlreadyMember = errors.New("already a team member")

	// ErrDeadlinePassed indicates the join deadline has passed.
	ErrDeadlinePassed = errors.New("team deadline has passed")

	// ErrTeamExpired indicates a mutation was attempted on an expired team.
	ErrTeamExpired = errors.New("team has expired")

	// ErrTeamNotRecruiting indicates the team no longer accepts members.
	ErrTeamNotRecruiting = errors.New("team is not recruiting")

	// ErrNotCreator indicates the actor is not the team creator.
	ErrNotCreator = errors.New("only the team creator may do this")

	// ErrTeamCompleted indicates the team already funded a booking.
	ErrTeamCompleted = errors.New("team is already completed")
)

package ledger

import "errors"

// Ledger domain errors.
var (
	// ErrLedgerNotFound indicates the ledger does not exist.
	ErrLedgerNotFound = errors.New("ledger not found")

	// ErrLedgerExists indicates a ledger was already opened for the team.
	ErrLedgerExists = errors.New("ledger already opened for team")

	// ErrTeamNotRecruiting indicates the team is not in a state from
	// which a ledger can be opened.
	ErrTeamNotRecruiting = errors.New("team is not recruiting")

	// ErrNotAuthorized indicates the actor is not the team creator.
	ErrNotAuthorized = errors.New("only the team creator may confirm contributions")

	// ErrUnknownMember indicates the member has no contribution on the
	// ledger.
	ErrUnknownMember = errors.New("member has no contribution on this ledger")

	// ErrTeamExpired indicates the team's deadline has passed.
	ErrTeamExpired = errors.New("team has expired")
)

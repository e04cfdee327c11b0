package account

import "errors"

// Account domain errors.
var (
	// ErrOwnerNotFound indicates the owner does not exist.
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrNoVirtualAccount indicates no collection account has been
	// issued yet.
	ErrNoVirtualAccount = errors.New("owner has no virtual account")
)

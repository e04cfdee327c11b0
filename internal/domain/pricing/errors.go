package pricing

import "errors"

// Pricing domain errors.
var (
	// ErrInvalidAmount indicates a non-positive base amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrPricingConfiguration indicates the split produced a negative
	// platform share. The rate schedule is inconsistent; the charge must
	// not proceed.
	ErrPricingConfiguration = errors.New("pricing configuration yields negative platform share")
)

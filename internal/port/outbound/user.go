package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
)

// UserDatabasePort defines user persistence operations.
type UserDatabasePort interface {
	// Create creates a new user record.
	Create(ctx context.Context, user *model.User) error

	// FindByID finds a user by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// FindByEmail finds a user by email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByReferralCode finds a user by referral code.
	FindByReferralCode(ctx context.Context, code string) (*model.User, error)

	// Update updates a user record.
	Update(ctx context.Context, user *model.User) error

	// CreditWallet atomically adds amount to the user's wallet balance.
	CreditWallet(ctx context.Context, userID uuid.UUID, amount int64) error

	// DebitWallet atomically subtracts amount from the user's wallet
	// balance, failing if the balance would go negative.
	DebitWallet(ctx context.Context, userID uuid.UUID, amount int64) error
}

// OwnerDatabasePort defines facility owner persistence operations.
type OwnerDatabasePort interface {
	// Create creates a new owner record.
	Create(ctx context.Context, owner *model.Owner) error

	// FindByID finds an owner by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Owner, error)

	// FindByEmail finds an owner by email.
	FindByEmail(ctx context.Context, email string) (*model.Owner, error)

	// Update updates an owner record.
	Update(ctx context.Context, owner *model.Owner) error

	// CreditBalance atomically adds amount to the owner's payable balance.
	CreditBalance(ctx context.Context, ownerID uuid.UUID, amount int64) error
}

// CashbackDatabasePort defines referral cashback persistence operations.
type CashbackDatabasePort interface {
	// Create creates a cashback record.
	Create(ctx context.Context, cashback *model.Cashback) error

	// ExistsForBooking checks whether cashback was already granted for a
	// booking.
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

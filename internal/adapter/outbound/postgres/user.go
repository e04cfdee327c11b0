package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"gorm.io/gorm"
)

// userAdapter implements outbound.UserDatabasePort.
type userAdapter struct {
	db *gorm.DB
}

// NewUserAdapter creates a new user database adapter.
func NewUserAdapter(db *gorm.DB) outbound.UserDatabasePort {
	return &userAdapter{db: db}
}

var _ outbound.UserDatabasePort = (*userAdapter)(nil)

func (a *userAdapter) Create(ctx context.Context, user *model.User) error {
	if err := a.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (a *userAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := a.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (a *userAdapter) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := a.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (a *userAdapter) FindByReferralCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	err := a.db.WithContext(ctx).First(&user, "referral_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by referral code: %w", err)
	}
	return &user, nil
}

func (a *userAdapter) Update(ctx context.Context, user *model.User) error {
	if err := a.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (a *userAdapter) CreditWallet(ctx context.Context, userID uuid.UUID, amount int64) error {
	result := a.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("credit wallet: user %s not found", userID)
	}
	return nil
}

func (a *userAdapter) DebitWallet(ctx context.Context, userID uuid.UUID, amount int64) error {
	result := a.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND wallet_balance >= ?", userID, amount).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("debit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("debit wallet: insufficient balance for user %s", userID)
	}
	return nil
}

// ownerAdapter implements outbound.OwnerDatabasePort.
type ownerAdapter struct {
	db *gorm.DB
}

// NewOwnerAdapter creates a new owner database adapter.
func NewOwnerAdapter(db *gorm.DB) outbound.OwnerDatabasePort {
	return &ownerAdapter{db: db}
}

var _ outbound.OwnerDatabasePort = (*ownerAdapter)(nil)

func (a *ownerAdapter) Create(ctx context.Context, owner *model.Owner) error {
	if err := a.db.WithContext(ctx).Create(owner).Error; err != nil {
		return fmt.Errorf("create owner: %w", err)
	}
	return nil
}

func (a *ownerAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Owner, error) {
	var owner model.Owner
	err := a.db.WithContext(ctx).First(&owner, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find owner by id: %w", err)
	}
	return &owner, nil
}

func (a *ownerAdapter) FindByEmail(ctx context.Context, email string) (*model.Owner, error) {
	var owner model.Owner
	err := a.db.WithContext(ctx).First(&owner, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find owner by email: %w", err)
	}
	return &owner, nil
}

func (a *ownerAdapter) Update(ctx context.Context, owner *model.Owner) error {
	if err := a.db.WithContext(ctx).Save(owner).Error; err != nil {
		return fmt.Errorf("update owner: %w", err)
	}
	return nil
}

func (a *ownerAdapter) CreditBalance(ctx context.Context, ownerID uuid.UUID, amount int64) error {
	result := a.db.WithContext(ctx).
		Model(&model.Owner{}).
		Where("id = ?", ownerID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("credit owner balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("credit owner balance: owner %s not found", ownerID)
	}
	return nil
}

// cashbackAdapter implements outbound.CashbackDatabasePort.
type cashbackAdapter struct {
	db *gorm.DB
}

// NewCashbackAdapter creates a new cashback database adapter.
func NewCashbackAdapter(db *gorm.DB) outbound.CashbackDatabasePort {
	return &cashbackAdapter{db: db}
}

var _ outbound.CashbackDatabasePort = (*cashbackAdapter)(nil)

func (a *cashbackAdapter) Create(ctx context.Context, cashback *model.Cashback) error {
	if err := a.db.WithContext(ctx).Create(cashback).Error; err != nil {
		return fmt.Errorf("create cashback: %w", err)
	}
	return nil
}

func (a *cashbackAdapter) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&model.Cashback{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check cashback: %w", err)
	}
	return count > 0, nil
}

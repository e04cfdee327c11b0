package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the caller role supplied by the identity provider.
type Role string

const (
	RolePlayer Role = "player"
	RoleOwner  Role = "owner"
)

// Identity is the authenticated caller as supplied by the identity
// provider. The engine trusts it and performs no authentication itself.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   Role
}

// User represents a player account with a referral wallet.
type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone,omitempty"`
	ReferralCode   string    `json:"referral_code" gorm:"uniqueIndex"`
	ReferredBy     *string   `json:"referred_by,omitempty"`
	WalletBalance  int64     `json:"wallet_balance" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// Owner represents a facility owner and their virtual collection account.
type Owner struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	AccountNumber string    `json:"account_number,omitempty"`
	BankName      string    `json:"bank_name,omitempty"`
	AccountName   string    `json:"account_name,omitempty"`
	Balance       int64     `json:"balance" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Owner) TableName() string {
	return "owners"
}

// HasVirtualAccount reports whether a collection account has been issued.
func (o *Owner) HasVirtualAccount() bool {
	return o.AccountNumber != ""
}

// VirtualAccount returns the owner's collection account details.
func (o *Owner) VirtualAccount() VirtualAccount {
	return VirtualAccount{
		AccountNumber: o.AccountNumber,
		BankName:      o.BankName,
		AccountName:   o.AccountName,
	}
}

// VirtualAccount is a gateway-issued bank-transfer destination.
type VirtualAccount struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
}

// Cashback records a referral reward credited to a user's wallet after a
// successful charge on a booking carrying their referral code.
type Cashback struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;uniqueIndex"`
	Amount    int64     `json:"amount" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (Cashback) TableName() string {
	return "cashbacks"
}

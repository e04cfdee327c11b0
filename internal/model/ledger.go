package model

import (
	"time"

	"github.com/google/uuid"
)

// LedgerStatus represents the state of a contribution ledger.
type LedgerStatus string

const (
	LedgerStatusCollecting      LedgerStatus = "collecting"
	LedgerStatusReadyForPayment LedgerStatus = "ready_for_payment"
	LedgerStatusCompleted       LedgerStatus = "completed"
)

// ContributionStatus represents the state of a single contribution.
type ContributionStatus string

const (
	ContributionStatusPending   ContributionStatus = "pending"
	ContributionStatusConfirmed ContributionStatus = "confirmed"
)

// ContributionLedger is the aggregate of all contributions for a team's
// payment phase. One-to-one with a team once the creator opens it.
type ContributionLedger struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	TeamID        uuid.UUID      `json:"team_id" gorm:"type:uuid;not null;uniqueIndex"`
	Total         int64          `json:"total" gorm:"not null"`
	RequiredShare int64          `json:"required_share" gorm:"not null"`
	Status        LedgerStatus   `json:"status" gorm:"not null;default:collecting"`
	Contributions []Contribution `json:"contributions" gorm:"foreignKey:LedgerID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (ContributionLedger) TableName() string {
	return "contribution_ledgers"
}

// DeriveStatus returns ready_for_payment iff every contribution is
// confirmed, otherwise collecting. A completed ledger stays completed.
func (l *ContributionLedger) DeriveStatus() LedgerStatus {
	if l.Status == LedgerStatusCompleted {
		return LedgerStatusCompleted
	}
	for _, c := range l.Contributions {
		if c.Status != ContributionStatusConfirmed {
			return LedgerStatusCollecting
		}
	}
	return LedgerStatusReadyForPayment
}

// FindContribution returns the contribution for the given member, or nil.
func (l *ContributionLedger) FindContribution(memberID uuid.UUID) *Contribution {
	for i := range l.Contributions {
		if l.Contributions[i].MemberID == memberID {
			return &l.Contributions[i]
		}
	}
	return nil
}

// ConfirmedCount returns the number of confirmed contributions.
func (l *ContributionLedger) ConfirmedCount() int {
	n := 0
	for _, c := range l.Contributions {
		if c.Status == ContributionStatusConfirmed {
			n++
		}
	}
	return n
}

// Contribution is one member's required monetary share. Mutated only by
// the ledger's confirm operation; confirmation is idempotent.
type Contribution struct {
	ID          uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	LedgerID    uuid.UUID          `json:"ledger_id" gorm:"type:uuid;not null;uniqueIndex:idx_ledger_member"`
	MemberID    uuid.UUID          `json:"member_id" gorm:"type:uuid;not null;uniqueIndex:idx_ledger_member"`
	Required    int64              `json:"required" gorm:"not null"`
	Status      ContributionStatus `json:"status" gorm:"not null;default:pending"`
	ConfirmedAt *time.Time         `json:"confirmed_at,omitempty"`
	ConfirmedBy *uuid.UUID         `json:"confirmed_by,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Contribution) TableName() string {
	return "contributions"
}

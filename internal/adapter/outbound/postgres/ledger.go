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

// ledgerAdapter implements outbound.LedgerDatabasePort.
type ledgerAdapter struct {
	db *gorm.DB
}

// NewLedgerAdapter creates a new ledger database adapter.
func NewLedgerAdapter(db *gorm.DB) outbound.LedgerDatabasePort {
	return &ledgerAdapter{db: db}
}

var _ outbound.LedgerDatabasePort = (*ledgerAdapter)(nil)

func (a *ledgerAdapter) Create(ctx context.Context, ledger *model.ContributionLedger) error {
	// Contributions ride along in one insert via the association.
	if err := a.db.WithContext(ctx).Create(ledger).Error; err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	return nil
}

func (a *ledgerAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.ContributionLedger, error) {
	var ledger model.ContributionLedger
	err := a.db.WithContext(ctx).Preload("Contributions").First(&ledger, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ledger by id: %w", err)
	}
	return &ledger, nil
}

func (a *ledgerAdapter) FindByTeamID(ctx context.Context, teamID uuid.UUID) (*model.ContributionLedger, error) {
	var ledger model.ContributionLedger
	err := a.db.WithContext(ctx).Preload("Contributions").First(&ledger, "team_id = ?", teamID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ledger by team id: %w", err)
	}
	return &ledger, nil
}

func (a *ledgerAdapter) Update(ctx context.Context, ledger *model.ContributionLedger) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Contributions").Save(ledger).Error; err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
		for i := range ledger.Contributions {
			if err := tx.Save(&ledger.Contributions[i]).Error; err != nil {
				return fmt.Errorf("save contribution: %w", err)
			}
		}
		return nil
	})
}

// Package account onboards facility owners onto the payment gateway:
// each owner gets a dedicated virtual account that payers transfer to.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/infra/events"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"go.uber.org/zap"
)

// AccountDomain defines the interface for owner account business logic.
type AccountDomain interface {
	// IssueVirtualAccount creates a dedicated virtual account for the
	// owner on the gateway. Idempotent: an owner who already has one
	// gets it back without a gateway call.
	IssueVirtualAccount(ctx context.Context, ownerID uuid.UUID) (*model.VirtualAccount, error)

	// GetVirtualAccount returns the owner's virtual account.
	GetVirtualAccount(ctx context.Context, ownerID uuid.UUID) (*model.VirtualAccount, error)
}

type accountDomain struct {
	ownerDB   outbound.OwnerDatabasePort
	gateway   outbound.PaymentGatewayPort
	publisher outbound.EventPublisherPort
	logger    *zap.Logger
}

// NewAccountDomain creates a new account domain service.
func NewAccountDomain(
	ownerDB outbound.OwnerDatabasePort,
	gateway outbound.PaymentGatewayPort,
	publisher outbound.EventPublisherPort,
	logger *zap.Logger,
) AccountDomain {
	return &accountDomain{
		ownerDB:   ownerDB,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

func (d *accountDomain) IssueVirtualAccount(ctx context.Context, ownerID uuid.UUID) (*model.VirtualAccount, error) {
	owner, err := d.findOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.HasVirtualAccount() {
		account := owner.VirtualAccount()
		return &account, nil
	}

	customer, err := d.gateway.CreateCustomer(ctx, owner.Email, owner.FullName, owner.Phone)
	if err != nil {
		return nil, fmt.Errorf("create gateway customer: %w", err)
	}
	account, err := d.gateway.CreateVirtualAccount(ctx, customer.Code)
	if err != nil {
		return nil, fmt.Errorf("create virtual account: %w", err)
	}

	owner.AccountNumber = account.AccountNumber
	owner.BankName = account.BankName
	owner.AccountName = account.AccountName
	owner.UpdatedAt = time.Now()
	if err := d.ownerDB.Update(ctx, owner); err != nil {
		return nil, fmt.Errorf("save virtual account: %w", err)
	}

	if err := d.publisher.Publish(ctx, events.NewVirtualAccountIssuedEvent(ownerID, account.AccountNumber, account.BankName)); err != nil {
		d.logger.Warn("failed to publish account event", zap.Error(err))
	}

	d.logger.Info("virtual account issued",
		zap.String("owner_id", ownerID.String()),
		zap.String("bank", account.BankName))
	return account, nil
}

func (d *accountDomain) GetVirtualAccount(ctx context.Context, ownerID uuid.UUID) (*model.VirtualAccount, error) {
	owner, err := d.findOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.HasVirtualAccount() {
		return nil, ErrNoVirtualAccount
	}
	account := owner.VirtualAccount()
	return &account, nil
}

func (d *accountDomain) findOwner(ctx context.Context, ownerID uuid.UUID) (*model.Owner, error) {
	owner, err := d.ownerDB.FindByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}
	if owner == nil {
		return nil, ErrOwnerNotFound
	}
	return owner, nil
}

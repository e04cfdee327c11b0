package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
)

// GatewayCustomer identifies a customer created on the payment gateway.
type GatewayCustomer struct {
	Code  string
	Email string
}

// GatewayTransaction is the gateway's view of a charge, as returned by
// transaction verification.
type GatewayTransaction struct {
	Reference string
	Status    string // "success", "failed", "abandoned"
	Amount    int64  // minor units actually charged
	Currency  string
	PaidAt    string
	Channel   string
}

// Successful reports whether the gateway settled the charge.
func (t *GatewayTransaction) Successful() bool {
	return t.Status == "success"
}

// PaymentGatewayPort defines the interface for the payment gateway.
type PaymentGatewayPort interface {
	// Name returns the gateway name.
	Name() string

	// CreateCustomer creates a customer on the gateway.
	CreateCustomer(ctx context.Context, email, name, phone string) (*GatewayCustomer, error)

	// CreateVirtualAccount issues a dedicated virtual account bound to a
	// gateway customer.
	CreateVirtualAccount(ctx context.Context, customerCode string) (*model.VirtualAccount, error)

	// VerifyTransaction fetches a transaction by reference from the
	// gateway. Webhook handling re-verifies every charge this way before
	// acting on it.
	VerifyTransaction(ctx context.Context, reference string) (*GatewayTransaction, error)

	// VerifyWebhookSignature checks a webhook payload against its
	// signature header.
	VerifyWebhookSignature(payload []byte, signature string) error
}

// WebhookEventDatabasePort defines webhook event persistence operations.
type WebhookEventDatabasePort interface {
	// Create creates a new webhook event record.
	Create(ctx context.Context, event *model.WebhookEvent) error

	// FindByEventID finds a webhook event by provider and event ID.
	// Returns nil when the event was never seen.
	FindByEventID(ctx context.Context, provider, eventID string) (*model.WebhookEvent, error)

	// MarkProcessed records the outcome of processing a webhook event.
	// A nil processErr clears any error left by an earlier attempt.
	MarkProcessed(ctx context.Context, id uuid.UUID, processErr error) error
}

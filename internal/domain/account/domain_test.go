package account

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"go.uber.org/zap"
)

type MockOwnerDB struct {
	mock.Mock
}

func (m *MockOwnerDB) Create(ctx context.Context, owner *model.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerDB) FindByID(ctx context.Context, id uuid.UUID) (*model.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Owner), args.Error(1)
}

func (m *MockOwnerDB) FindByEmail(ctx context.Context, email string) (*model.Owner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Owner), args.Error(1)
}

func (m *MockOwnerDB) Update(ctx context.Context, owner *model.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerDB) CreditBalance(ctx context.Context, ownerID uuid.UUID, amount int64) error {
	args := m.Called(ctx, ownerID, amount)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Name() string {
	return "paystack"
}

func (m *MockGateway) CreateCustomer(ctx context.Context, email, name, phone string) (*outbound.GatewayCustomer, error) {
	args := m.Called(ctx, email, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.GatewayCustomer), args.Error(1)
}

func (m *MockGateway) CreateVirtualAccount(ctx context.Context, customerCode string) (*model.VirtualAccount, error) {
	args := m.Called(ctx, customerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VirtualAccount), args.Error(1)
}

func (m *MockGateway) VerifyTransaction(ctx context.Context, reference string) (*outbound.GatewayTransaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.GatewayTransaction), args.Error(1)
}

func (m *MockGateway) VerifyWebhookSignature(payload []byte, signature string) error {
	args := m.Called(payload, signature)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestIssueVirtualAccount(t *testing.T) {
	owner := &model.Owner{
		ID:       uuid.New(),
		Email:    "owner@example.com",
		FullName: "Ada Obi",
	}

	ownerDB := new(MockOwnerDB)
	gateway := new(MockGateway)
	ownerDB.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
	gateway.On("CreateCustomer", mock.Anything, owner.Email, owner.FullName, "").
		Return(&outbound.GatewayCustomer{Code: "CUS_123", Email: owner.Email}, nil)
	gateway.On("CreateVirtualAccount", mock.Anything, "CUS_123").
		Return(&model.VirtualAccount{
			AccountNumber: "9900112233",
			BankName:      "Titan Bank",
			AccountName:   "Ada Obi",
		}, nil)
	ownerDB.On("Update", mock.Anything, mock.MatchedBy(func(o *model.Owner) bool {
		return o.AccountNumber == "9900112233"
	})).Return(nil)
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	d := NewAccountDomain(ownerDB, gateway, publisher, zap.NewNop())

	account, err := d.IssueVirtualAccount(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "9900112233", account.AccountNumber)
	ownerDB.AssertExpectations(t)
}

func TestIssueVirtualAccount_Idempotent(t *testing.T) {
	owner := &model.Owner{
		ID:            uuid.New(),
		Email:         "owner@example.com",
		AccountNumber: "9900112233",
		BankName:      "Titan Bank",
		AccountName:   "Ada Obi",
	}

	ownerDB := new(MockOwnerDB)
	gateway := new(MockGateway)
	ownerDB.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)

	d := NewAccountDomain(ownerDB, gateway, new(MockPublisher), zap.NewNop())

	account, err := d.IssueVirtualAccount(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "9900112233", account.AccountNumber)
	gateway.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetVirtualAccount_NoneIssued(t *testing.T) {
	owner := &model.Owner{ID: uuid.New(), Email: "owner@example.com"}

	ownerDB := new(MockOwnerDB)
	ownerDB.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)

	d := NewAccountDomain(ownerDB, new(MockGateway), new(MockPublisher), zap.NewNop())

	_, err := d.GetVirtualAccount(context.Background(), owner.ID)
	assert.ErrorIs(t, err, ErrNoVirtualAccount)
}

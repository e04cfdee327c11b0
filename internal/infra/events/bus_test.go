package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock implementations ---

type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Publish(ctx context.Context, routingKey string, message []byte) error {
	args := m.Called(ctx, routingKey, message)
	return args.Error(0)
}

func (m *MockBroker) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestBusDispatchesToRegisteredHandlers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var seen []string
	bus.Register(NewHandlerFunc([]string{BookingConfirmedType}, func(ctx context.Context, e Event) error {
		seen = append(seen, e.EventType())
		return nil
	}))

	event := NewBookingConfirmedEvent(uuid.New(), uuid.New(), uuid.New(), nil, "2026-09-01", 10, 5102)
	require.NoError(t, bus.Publish(context.Background(), event))
	require.NoError(t, bus.Publish(context.Background(), NewBookingFailedEvent(uuid.New(), uuid.New(), "SPH-X")))

	assert.Equal(t, []string{BookingConfirmedType}, seen)
}

func TestBusContinuesPastFailingHandler(t *testing.T) {
	bus := NewBus(zap.NewNop())

	called := 0
	bus.Register(NewHandlerFunc([]string{TeamCreatedType}, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	}))
	bus.Register(NewHandlerFunc([]string{TeamCreatedType}, func(ctx context.Context, e Event) error {
		called++
		return nil
	}))

	event := NewTeamCreatedEvent(uuid.New(), uuid.New(), uuid.New(), "ABC123", 4)
	require.NoError(t, bus.Publish(context.Background(), event))
	assert.Equal(t, 1, called)
}

func TestBusPublisherRejectsForeignTypes(t *testing.T) {
	publisher := NewBusPublisher(NewBus(zap.NewNop()))

	err := publisher.Publish(context.Background(), struct{ Name string }{"not an event"})
	assert.Error(t, err)
}

func TestDispatcherForwardsToBroker(t *testing.T) {
	broker := new(MockBroker)
	broker.On("Publish", mock.Anything, "booking.confirmed", mock.MatchedBy(func(b []byte) bool {
		var decoded map[string]interface{}
		return json.Unmarshal(b, &decoded) == nil && decoded["type"] == BookingConfirmedType
	})).Return(nil)

	d := NewDispatcher(broker, zap.NewNop())
	event := NewBookingConfirmedEvent(uuid.New(), uuid.New(), uuid.New(), nil, "2026-09-01", 10, 5102)

	require.NoError(t, d.Handle(context.Background(), event))
	broker.AssertExpectations(t)
}

func TestDispatcherHandlesEveryRoutedType(t *testing.T) {
	d := NewDispatcher(new(MockBroker), zap.NewNop())
	assert.ElementsMatch(t, []string{
		TeamCreatedType,
		TeamMemberJoinedType,
		TeamReadyForPaymentType,
		BookingConfirmedType,
		BookingCancelledType,
		BookingFailedType,
		CashbackGrantedType,
		VirtualAccountIssuedType,
	}, d.Handles())
}

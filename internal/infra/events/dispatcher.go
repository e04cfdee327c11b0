package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sporthub/server/internal/port/outbound"
)

// routingKeys maps event types to broker routing keys.
var routingKeys = map[string]string{
	TeamCreatedType:          "team.created",
	TeamMemberJoinedType:     "team.member_joined",
	TeamReadyForPaymentType:  "team.ready_for_payment",
	BookingConfirmedType:     "booking.confirmed",
	BookingCancelledType:     "booking.cancelled",
	BookingFailedType:        "booking.failed",
	CashbackGrantedType:      "cashback.granted",
	VirtualAccountIssuedType: "account.issued",
}

// Dispatcher forwards bus events to the message broker so external
// consumers can react to them. It is registered on the bus like any
// other handler.
type Dispatcher struct {
	broker outbound.MessagePort
	logger *zap.Logger
}

var _ Handler = (*Dispatcher)(nil)

// NewDispatcher creates a new broker dispatcher.
func NewDispatcher(broker outbound.MessagePort, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{broker: broker, logger: logger}
}

// Handles returns every event type with a routing key.
func (d *Dispatcher) Handles() []string {
	types := make([]string, 0, len(routingKeys))
	for eventType := range routingKeys {
		types = append(types, eventType)
	}
	return types
}

// Handle serializes the event and publishes it to the broker.
func (d *Dispatcher) Handle(ctx context.Context, event Event) error {
	key, ok := routingKeys[event.EventType()]
	if !ok {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := d.broker.Publish(ctx, key, payload); err != nil {
		return fmt.Errorf("dispatch %s: %w", event.EventType(), err)
	}

	d.logger.Debug("event dispatched to broker",
		zap.String("event_type", event.EventType()),
		zap.String("routing_key", key),
	)
	return nil
}

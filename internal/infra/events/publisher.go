package events

import (
	"context"
	"fmt"

	"github.com/sporthub/server/internal/port/outbound"
)

// busPublisher adapts the in-process bus to the domain-facing
// publisher port.
type busPublisher struct {
	bus *Bus
}

var _ outbound.EventPublisherPort = (*busPublisher)(nil)

// NewBusPublisher wraps a bus as an outbound.EventPublisherPort.
func NewBusPublisher(bus *Bus) outbound.EventPublisherPort {
	return &busPublisher{bus: bus}
}

// Publish dispatches the event on the bus. The event must implement
// the Event interface.
func (p *busPublisher) Publish(ctx context.Context, event interface{}) error {
	evt, ok := event.(Event)
	if !ok {
		return fmt.Errorf("unsupported event type %T", event)
	}
	return p.bus.Publish(ctx, evt)
}

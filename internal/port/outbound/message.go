package outbound

import "context"

// EventPublisherPort defines event publishing operations.
type EventPublisherPort interface {
	// Publish publishes a domain event.
	Publish(ctx context.Context, event interface{}) error
}

// MessagePort defines message broker operations.
type MessagePort interface {
	// Publish publishes a message under a routing key.
	Publish(ctx context.Context, routingKey string, message []byte) error

	// Close releases the broker connection.
	Close() error
}

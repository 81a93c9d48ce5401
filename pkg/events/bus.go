package events

import "context"

type Handler func(ctx context.Context, event Event) error

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Subscriber delivers every event on the bus to handler. durable names the
// consumer group on transports that support one.
type Subscriber interface {
	Subscribe(ctx context.Context, durable string, handler Handler) error
}

package events

import (
	"context"
	"fmt"

	"impes-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const localTopic = "payments"

// LocalBus is the in-process transport used when NATS is not configured.
// It does not redeliver: a failing handler is logged and the message acked.
type LocalBus struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewLocalBus(log logger.ILogger) *LocalBus {
	return &LocalBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NopLogger{}),
		logger: log,
	}
}

func (b *LocalBus) Publish(ctx context.Context, event Event) error {
	data, err := Encode(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.EventType(), err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return b.pubSub.Publish(localTopic, msg)
}

func (b *LocalBus) Subscribe(ctx context.Context, durable string, handler Handler) error {
	messages, err := b.pubSub.Subscribe(ctx, localTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			b.process(ctx, durable, msg, handler)
		}
	}()

	return nil
}

func (b *LocalBus) process(ctx context.Context, durable string, msg *message.Message, handler Handler) {
	defer msg.Ack()

	event, err := Decode(msg.Payload)
	if err != nil {
		b.logger.Error("EVENTS", "Dropping undecodable event", map[string]interface{}{
			"consumer": durable,
			"error":    err,
		})
		return
	}

	if err := handler(ctx, event); err != nil {
		b.logger.Error("EVENTS", "Event handler failed", map[string]interface{}{
			"consumer": durable,
			"type":     event.Type,
			"error":    err,
		})
	}
}

func (b *LocalBus) Close() error {
	return b.pubSub.Close()
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/arthurdotwork/socialchat/internal/infrastructure/redis"
)

type LocalDeliverer interface {
	Deliver(ctx context.Context, envelope domain.Envelope)
}

// Subscriber feeds envelopes published by the other instances to the local
// connections of their target.
type Subscriber struct {
	redisClient *redis.Client
	deliverer   LocalDeliverer
}

func NewSubscriber(redisClient *redis.Client, deliverer LocalDeliverer) *Subscriber {
	return &Subscriber{
		redisClient: redisClient,
		deliverer:   deliverer,
	}
}

func (s *Subscriber) Subscribe(ctx context.Context, channel string) error {
	subscriber := s.redisClient.Subscribe(ctx, channel)

	if err := subscriber(func(msg redis.Message) error {
		return s.Handle(ctx, msg.Payload)
	}); err != nil {
		if ctx.Err() != nil {
			return nil
		}

		slog.ErrorContext(ctx, "error subscribing to redis", "error", err)
		return fmt.Errorf("subscriber: %w", err)
	}

	return nil
}

// Handle delivers one raw envelope. A malformed envelope is logged and
// skipped so one bad publisher cannot stop the relay.
func (s *Subscriber) Handle(ctx context.Context, payload string) error {
	var envelope domain.Envelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		slog.ErrorContext(ctx, "error decoding relayed envelope", "error", err)
		return nil
	}

	if envelope.Target == "" || envelope.Event == "" {
		slog.ErrorContext(ctx, "ignoring relayed envelope without target or event")
		return nil
	}

	s.deliverer.Deliver(ctx, envelope)
	return nil
}

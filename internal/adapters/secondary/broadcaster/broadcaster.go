package broadcaster

import (
	"context"
	"fmt"

	"github.com/arthurdotwork/socialchat/internal/domain"
)

type Publisher interface {
	Publish(ctx context.Context, channel string, message any) error
}

// Broadcaster hands user-scoped events to the other instances over a shared
// pub/sub channel.
type Broadcaster struct {
	publisher Publisher
	channel   string
}

func NewBroadcaster(publisher Publisher, channel string) *Broadcaster {
	return &Broadcaster{publisher: publisher, channel: channel}
}

func (b *Broadcaster) Publish(ctx context.Context, envelope domain.Envelope) error {
	if err := b.publisher.Publish(ctx, b.channel, envelope); err != nil {
		return fmt.Errorf("publisher.Publish: %w", err)
	}

	return nil
}

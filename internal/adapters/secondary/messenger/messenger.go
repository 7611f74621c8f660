package messenger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/arthurdotwork/socialchat/internal/domain"
	"google.golang.org/protobuf/types/known/structpb"
)

const DefaultBufferSize = 64

// WriteFunc puts one event on the wire. It is only ever called from Run.
type WriteFunc func(ctx context.Context, event domain.Event) error

// Messenger is the outbound side of one client connection. Send only
// enqueues, so a slow client never blocks whoever is fanning out; Run writes
// the queue to the wire in order.
type Messenger struct {
	id    domain.ConnectionID
	write WriteFunc
	queue chan domain.Event

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func NewMessenger(id domain.ConnectionID, write WriteFunc, size int) *Messenger {
	if size <= 0 {
		size = DefaultBufferSize
	}

	return &Messenger{
		id:    id,
		write: write,
		queue: make(chan domain.Event, size),
		done:  make(chan struct{}),
	}
}

func (m *Messenger) ID() domain.ConnectionID {
	return m.id
}

func (m *Messenger) Send(ctx context.Context, event domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.ErrConnectionClosed
	}

	select {
	case m.queue <- event:
		return nil
	default:
		return domain.ErrSendBufferFull
	}
}

// Run drains the queue until ctx is done, Close is called, or a write fails.
func (m *Messenger) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.done:
			return nil
		case event := <-m.queue:
			if err := m.write(ctx, event); err != nil {
				slog.DebugContext(ctx, "error writing event", "connection", m.id, "event", event.Name, "error", err)
				m.Close()
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

// Close makes every later Send fail with domain.ErrConnectionClosed.
func (m *Messenger) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	m.closed = true
	close(m.done)
}

// EncodeJSON renders the event as a {"event", "payload"} frame.
func EncodeJSON(event domain.Event) ([]byte, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return b, nil
}

// EncodeStruct renders the same frame as EncodeJSON as a protobuf Struct.
func EncodeStruct(event domain.Event) (*structpb.Struct, error) {
	b, err := EncodeJSON(event)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("structpb.NewStruct: %w", err)
	}

	return msg, nil
}

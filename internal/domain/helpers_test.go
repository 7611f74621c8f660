package domain_test

import (
	"context"
	"sync"

	"github.com/arthurdotwork/socialchat/internal/domain"
)

type recordingConn struct {
	id domain.ConnectionID

	mu     sync.Mutex
	events []domain.Event
	closed bool
}

func newConn(id string) *recordingConn {
	return &recordingConn{id: domain.ConnectionID(id)}
}

func (c *recordingConn) ID() domain.ConnectionID {
	return c.id
}

func (c *recordingConn) Send(_ context.Context, event domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrConnectionClosed
	}

	c.events = append(c.events, event)
	return nil
}

func (c *recordingConn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
}

func (c *recordingConn) received() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]domain.Event(nil), c.events...)
}

func (c *recordingConn) receivedNamed(name string) []domain.Event {
	var events []domain.Event
	for _, e := range c.received() {
		if e.Name == name {
			events = append(events, e)
		}
	}

	return events
}

type staticVerifier map[string]domain.UserID

func (v staticVerifier) Verify(_ context.Context, token string) (domain.UserID, error) {
	userID, ok := v[token]
	if !ok {
		return "", domain.ErrInvalidToken
	}

	return userID, nil
}

type core struct {
	registry   *domain.ConnectionRegistry
	rooms      *domain.RoomMembership
	dispatcher *domain.Dispatcher
	presence   *domain.PresenceManager
	broker     *domain.RoomBroker
}

func newCore(verifier domain.IdentityVerifier) core {
	registry := domain.NewConnectionRegistry()
	rooms := domain.NewRoomMembership()
	dispatcher := domain.NewDispatcher(registry, rooms)

	return core{
		registry:   registry,
		rooms:      rooms,
		dispatcher: dispatcher,
		presence:   domain.NewPresenceManager(registry, rooms, verifier, nil),
		broker:     domain.NewRoomBroker(registry, rooms, dispatcher, nil),
	}
}

// online registers conn under userID the way an identified session is.
func (c core) online(userID domain.UserID, conn domain.Connection) {
	c.rooms.Track(conn.ID())
	c.registry.Register(userID, conn)
}

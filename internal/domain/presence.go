package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type SessionState int

const (
	StateUnidentified SessionState = iota
	StateIdentified
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateUnidentified:
		return "unidentified"
	case StateIdentified:
		return "identified"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Session tracks the presence state of one connection.
type Session struct {
	conn Connection

	mu     sync.Mutex
	state  SessionState
	userID UserID
}

func (s *Session) Connection() Connection {
	return s.conn
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// UserID returns the verified user bound to the session, if any.
func (s *Session) UserID() (UserID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.userID, s.state == StateIdentified
}

// PresenceManager is the only writer of the ConnectionRegistry.
type PresenceManager struct {
	registry *ConnectionRegistry
	rooms    *RoomMembership
	verifier IdentityVerifier
	recorder Recorder
}

func NewPresenceManager(registry *ConnectionRegistry, rooms *RoomMembership, verifier IdentityVerifier, recorder Recorder) *PresenceManager {
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &PresenceManager{
		registry: registry,
		rooms:    rooms,
		verifier: verifier,
		recorder: recorder,
	}
}

func (m *PresenceManager) Open(ctx context.Context, conn Connection) *Session {
	m.rooms.Track(conn.ID())
	m.recorder.ConnectionOpened()
	slog.DebugContext(ctx, "connection opened", "connection", conn.ID())

	return &Session{conn: conn, state: StateUnidentified}
}

// Identify binds the session to the user the token verifies to. A token that
// does not verify leaves the session untouched and nothing is registered.
// Identifying as another user drops the rooms joined under the previous one.
func (m *PresenceManager) Identify(ctx context.Context, s *Session, token string) (UserID, error) {
	userID, err := m.verifier.Verify(ctx, token)
	if err != nil {
		m.recorder.Registration("rejected")
		return "", fmt.Errorf("verifier.Verify: %w", err)
	}
	if userID == "" {
		m.recorder.Registration("rejected")
		return "", fmt.Errorf("verifier.Verify: %w", ErrInvalidToken)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return "", ErrSessionClosed
	}

	if s.state == StateIdentified && s.userID != userID {
		left := m.rooms.LeaveAll(s.conn.ID())
		slog.DebugContext(ctx, "connection changed user", "connection", s.conn.ID(),
			"from", s.userID, "to", userID, "rooms", len(left))
	}

	m.registry.Register(userID, s.conn)
	s.state = StateIdentified
	s.userID = userID

	m.recorder.Registration("accepted")
	m.recorder.UsersOnline(m.registry.Len())
	slog.DebugContext(ctx, "connection registered", "connection", s.conn.ID(), "user", userID,
		"registry", m.registry.Entries())

	return userID, nil
}

// Close tears the session down. It is safe to call more than once.
func (m *PresenceManager) Close(ctx context.Context, s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return
	}
	s.state = StateClosed

	m.rooms.Forget(s.conn.ID())

	userID, last, found := m.registry.Unregister(s.conn)
	m.recorder.ConnectionClosed()
	m.recorder.UsersOnline(m.registry.Len())

	if found {
		slog.DebugContext(ctx, "connection unregistered", "connection", s.conn.ID(), "user", userID,
			"last", last, "registry", m.registry.Entries())
	}
}

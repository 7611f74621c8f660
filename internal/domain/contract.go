package domain

import (
	"context"
	"time"
)

// Connection is one live bidirectional channel to a client process.
type Connection interface {
	ID() ConnectionID
	// Send enqueues the event on the connection's outbox. It must not block
	// on the network.
	Send(ctx context.Context, event Event) error
}

type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (UserID, error)
}

type FriendStore interface {
	HasPending(ctx context.Context, requester UserID, target UserID) (bool, error)
	Create(ctx context.Context, friend FriendRelationship) error
	Get(ctx context.Context, id string) (FriendRelationship, error)
	UpdateStatus(ctx context.Context, id string, status FriendStatus, updatedAt time.Time) (FriendRelationship, error)
	Delete(ctx context.Context, id string) (FriendRelationship, error)
	ListForUser(ctx context.Context, userID UserID) ([]FriendRelationship, error)
}

type MessageStore interface {
	Create(ctx context.Context, message ChatMessage) error
	ListBetween(ctx context.Context, a UserID, b UserID) ([]ChatMessage, error)
	DeleteBySender(ctx context.Context, id string, sender UserID) (ChatMessage, error)
}

// Relay carries user-scoped events to the other instances of the service.
type Relay interface {
	Publish(ctx context.Context, envelope Envelope) error
}

type Recorder interface {
	ConnectionOpened()
	ConnectionClosed()
	Registration(outcome string)
	UsersOnline(n int)
	EventDelivered(event string)
	EventDropped(event string)
	RoomCreated()
}

type NopRecorder struct{}

func (NopRecorder) ConnectionOpened() {}
func (NopRecorder) ConnectionClosed() {}
func (NopRecorder) Registration(string) {}
func (NopRecorder) UsersOnline(int) {}
func (NopRecorder) EventDelivered(string) {}
func (NopRecorder) EventDropped(string) {}
func (NopRecorder) RoomCreated() {}

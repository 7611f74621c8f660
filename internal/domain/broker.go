package domain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

const peerOfflineMessage = "Your friend is offline or does not exist."

// RoomBroker pairs the live connections of two users into a fresh room.
type RoomBroker struct {
	registry   *ConnectionRegistry
	rooms      *RoomMembership
	dispatcher *Dispatcher
	recorder   Recorder
	newRoomID  func() RoomID
}

func NewRoomBroker(registry *ConnectionRegistry, rooms *RoomMembership, dispatcher *Dispatcher, recorder Recorder) *RoomBroker {
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &RoomBroker{
		registry:   registry,
		rooms:      rooms,
		dispatcher: dispatcher,
		recorder:   recorder,
		newRoomID: func() RoomID {
			return RoomID(uuid.NewString())
		},
	}
}

// RequestRoom mints a room for a and b when both are online. When b is
// offline every connection of a is told so; when a is offline nothing
// happens. Rooms are never reused: each successful call returns a new id.
func (b *RoomBroker) RequestRoom(ctx context.Context, a UserID, peer UserID) (RoomID, bool) {
	if a == peer {
		slog.DebugContext(ctx, "ignoring room request with self", "user", a)
		return "", false
	}

	requesterConns := b.registry.Lookup(a)
	if len(requesterConns) == 0 {
		slog.DebugContext(ctx, "requester has no live connection", "user", a)
		return "", false
	}

	peerConns := b.registry.Lookup(peer)
	if len(peerConns) == 0 {
		b.dispatcher.SendTo(ctx, requesterConns, EventPeerOffline, Notice{Message: peerOfflineMessage})
		return "", false
	}

	roomID := b.newRoomID()

	// Connections closed since the lookup are not joined.
	requesterConns = b.rooms.Join(roomID, requesterConns...)
	peerConns = b.rooms.Join(roomID, peerConns...)
	b.recorder.RoomCreated()

	slog.DebugContext(ctx, "room created", "room", roomID, "user", a, "peer", peer,
		"connections", len(requesterConns)+len(peerConns))

	b.dispatcher.SendTo(ctx, requesterConns, EventRoomReady, RoomReady{
		PeerID:  peer,
		RoomID:  roomID,
		Message: fmt.Sprintf("You are chatting with %s", peer),
	})
	b.dispatcher.SendTo(ctx, peerConns, EventRoomReady, RoomReady{
		PeerID:  a,
		RoomID:  roomID,
		Message: fmt.Sprintf("You are chatting with %s", a),
	})

	return roomID, true
}

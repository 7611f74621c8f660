package domain

import (
	"context"
	"fmt"
	"log/slog"
)

// ChatService is what a transport talks to: it drives one connection through
// its presence lifecycle and turns its commands into room and fan-out calls.
type ChatService struct {
	presence *PresenceManager
	broker   *RoomBroker
	rooms    *RoomMembership
	messages *MessageService
}

func NewChatService(presence *PresenceManager, broker *RoomBroker, rooms *RoomMembership, messages *MessageService) *ChatService {
	return &ChatService{
		presence: presence,
		broker:   broker,
		rooms:    rooms,
		messages: messages,
	}
}

func (s *ChatService) Connect(ctx context.Context, conn Connection) *Session {
	return s.presence.Open(ctx, conn)
}

func (s *ChatService) RegisterUser(ctx context.Context, session *Session, token string) (UserID, error) {
	userID, err := s.presence.Identify(ctx, session, token)
	if err != nil {
		return "", fmt.Errorf("presence.Identify: %w", err)
	}

	return userID, nil
}

// RegisterRoom pairs the session's verified user with peer. The requester is
// always the verified identity, never a client-supplied id.
func (s *ChatService) RegisterRoom(ctx context.Context, session *Session, peer UserID) (RoomID, bool, error) {
	userID, ok := session.UserID()
	if !ok {
		return "", false, ErrNotIdentified
	}

	roomID, created := s.broker.RequestRoom(ctx, userID, peer)
	return roomID, created, nil
}

func (s *ChatService) SendMessage(ctx context.Context, session *Session, roomID RoomID, text string, senderName string) error {
	if _, ok := session.UserID(); !ok {
		return ErrNotIdentified
	}

	if !s.rooms.IsMember(roomID, session.Connection().ID()) {
		return ErrNotRoomMember
	}

	slog.DebugContext(ctx, "message received in room", "room", roomID)
	s.messages.Relay(ctx, roomID, text, senderName)

	return nil
}

func (s *ChatService) Disconnect(ctx context.Context, session *Session) {
	s.presence.Close(ctx, session)
}

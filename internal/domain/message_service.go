package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MessageService struct {
	store      MessageStore
	dispatcher *Dispatcher
	now        func() time.Time
}

func NewMessageService(store MessageStore, dispatcher *Dispatcher) *MessageService {
	return &MessageService{
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Relay fans chat text out to every connection joined to the room.
func (s *MessageService) Relay(ctx context.Context, roomID RoomID, text string, senderName string) {
	s.dispatcher.SendToRoom(ctx, roomID, EventMessageReceived, MessageReceived{
		RoomID:     roomID,
		Text:       text,
		SenderName: senderName,
	})
}

func (s *MessageService) Create(ctx context.Context, sender UserID, receiver UserID, text string) (ChatMessage, error) {
	if sender == "" || receiver == "" || strings.TrimSpace(text) == "" {
		return ChatMessage{}, fmt.Errorf("%w: sender, receiver, and message are required", ErrInvalidArgument)
	}

	now := s.now().UTC()
	message := ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Receiver:  receiver,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, message); err != nil {
		return ChatMessage{}, fmt.Errorf("store.Create: %w", err)
	}

	return message, nil
}

// History returns the messages exchanged between a and b, oldest first.
func (s *MessageService) History(ctx context.Context, a UserID, b UserID) ([]ChatMessage, error) {
	messages, err := s.store.ListBetween(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("store.ListBetween: %w", err)
	}

	return messages, nil
}

// Delete removes a message. Only its sender may delete it.
func (s *MessageService) Delete(ctx context.Context, id string, sender UserID) (ChatMessage, error) {
	message, err := s.store.DeleteBySender(ctx, id, sender)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("store.DeleteBySender: %w", err)
	}

	return message, nil
}

package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FriendService persists friend relationships and notifies both parties
// once the write succeeded. A failed write never emits an event.
type FriendService struct {
	store      FriendStore
	dispatcher *Dispatcher
	now        func() time.Time
}

func NewFriendService(store FriendStore, dispatcher *Dispatcher) *FriendService {
	return &FriendService{
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (s *FriendService) Request(ctx context.Context, requester UserID, target UserID) (FriendRelationship, error) {
	if requester == "" || target == "" || requester == target {
		return FriendRelationship{}, fmt.Errorf("%w: requester and target must be two distinct users", ErrInvalidArgument)
	}

	pending, err := s.store.HasPending(ctx, requester, target)
	if err != nil {
		return FriendRelationship{}, fmt.Errorf("store.HasPending: %w", err)
	}
	if pending {
		return FriendRelationship{}, ErrAlreadyRequested
	}

	now := s.now().UTC()
	friend := FriendRelationship{
		ID:        uuid.NewString(),
		Requester: requester,
		Target:    target,
		Status:    FriendPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, friend); err != nil {
		return FriendRelationship{}, fmt.Errorf("store.Create: %w", err)
	}

	s.dispatcher.SendToUser(ctx, requester, EventFriendRequestSent, FriendNotification{
		Message: "New friend request sent",
		Data:    friend,
	})
	s.dispatcher.SendToUser(ctx, target, EventFriendRequestReceived, FriendNotification{
		Message: "New friend request received",
		Data:    friend,
	})

	return friend, nil
}

func (s *FriendService) List(ctx context.Context, userID UserID) ([]FriendRelationship, error) {
	friends, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store.ListForUser: %w", err)
	}

	return friends, nil
}

// UpdateStatus changes the status of a relationship the actor is part of.
// Accepted and blocked notify both parties; going back to pending is silent.
func (s *FriendService) UpdateStatus(ctx context.Context, actor UserID, id string, status string) (FriendRelationship, error) {
	newStatus, err := ParseFriendStatus(status)
	if err != nil {
		return FriendRelationship{}, err
	}

	if err := s.authorize(ctx, actor, id); err != nil {
		return FriendRelationship{}, err
	}

	friend, err := s.store.UpdateStatus(ctx, id, newStatus, s.now().UTC())
	if err != nil {
		return FriendRelationship{}, fmt.Errorf("store.UpdateStatus: %w", err)
	}

	switch friend.Status {
	case FriendAccepted:
		s.notifyBoth(ctx, friend, EventFriendAccepted, "Friend request accepted successfully")
	case FriendBlocked:
		s.notifyBoth(ctx, friend, EventFriendBlocked, "Friend request blocked successfully")
	}

	return friend, nil
}

func (s *FriendService) Delete(ctx context.Context, actor UserID, id string) (FriendRelationship, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		return FriendRelationship{}, err
	}

	friend, err := s.store.Delete(ctx, id)
	if err != nil {
		return FriendRelationship{}, fmt.Errorf("store.Delete: %w", err)
	}

	s.notifyBoth(ctx, friend, EventFriendDeleted, "Friend request deleted successfully")

	return friend, nil
}

func (s *FriendService) authorize(ctx context.Context, actor UserID, id string) error {
	friend, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("store.Get: %w", err)
	}

	if !friend.Involves(actor) {
		return ErrForbidden
	}

	return nil
}

func (s *FriendService) notifyBoth(ctx context.Context, friend FriendRelationship, event string, message string) {
	notification := FriendNotification{Message: message, Data: friend}

	s.dispatcher.SendToUser(ctx, friend.Requester, event, notification)
	s.dispatcher.SendToUser(ctx, friend.Target, event, notification)
}

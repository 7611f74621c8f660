package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/arthurdotwork/socialchat/internal/domain"
)

// MemoryFriendStore keeps friend relationships in process. It is what the
// server runs on when no database is configured.
type MemoryFriendStore struct {
	friends map[string]domain.FriendRelationship
	sync.RWMutex
}

func NewMemoryFriendStore() *MemoryFriendStore {
	return &MemoryFriendStore{
		friends: make(map[string]domain.FriendRelationship),
	}
}

func (s *MemoryFriendStore) HasPending(ctx context.Context, requester domain.UserID, target domain.UserID) (bool, error) {
	s.RLock()
	defer s.RUnlock()

	for _, friend := range s.friends {
		if friend.Requester == requester && friend.Target == target && friend.Status == domain.FriendPending {
			return true, nil
		}
	}

	return false, nil
}

func (s *MemoryFriendStore) Create(ctx context.Context, friend domain.FriendRelationship) error {
	s.Lock()
	defer s.Unlock()

	s.friends[friend.ID] = friend
	return nil
}

func (s *MemoryFriendStore) Get(ctx context.Context, id string) (domain.FriendRelationship, error) {
	s.RLock()
	defer s.RUnlock()

	friend, ok := s.friends[id]
	if !ok {
		return domain.FriendRelationship{}, domain.ErrNotFound
	}

	return friend, nil
}

func (s *MemoryFriendStore) UpdateStatus(ctx context.Context, id string, status domain.FriendStatus, updatedAt time.Time) (domain.FriendRelationship, error) {
	s.Lock()
	defer s.Unlock()

	friend, ok := s.friends[id]
	if !ok {
		return domain.FriendRelationship{}, domain.ErrNotFound
	}

	friend.Status = status
	friend.UpdatedAt = updatedAt
	s.friends[id] = friend

	return friend, nil
}

func (s *MemoryFriendStore) Delete(ctx context.Context, id string) (domain.FriendRelationship, error) {
	s.Lock()
	defer s.Unlock()

	friend, ok := s.friends[id]
	if !ok {
		return domain.FriendRelationship{}, domain.ErrNotFound
	}

	delete(s.friends, id)
	return friend, nil
}

func (s *MemoryFriendStore) ListForUser(ctx context.Context, userID domain.UserID) ([]domain.FriendRelationship, error) {
	s.RLock()
	defer s.RUnlock()

	friends := make([]domain.FriendRelationship, 0)
	for _, friend := range s.friends {
		if friend.Involves(userID) {
			friends = append(friends, friend)
		}
	}

	slices.SortFunc(friends, func(a, b domain.FriendRelationship) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return friends, nil
}

type MemoryMessageStore struct {
	messages []domain.ChatMessage
	sync.RWMutex
}

func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{}
}

func (s *MemoryMessageStore) Create(ctx context.Context, message domain.ChatMessage) error {
	s.Lock()
	defer s.Unlock()

	s.messages = append(s.messages, message)
	return nil
}

func (s *MemoryMessageStore) ListBetween(ctx context.Context, a domain.UserID, b domain.UserID) ([]domain.ChatMessage, error) {
	s.RLock()
	defer s.RUnlock()

	messages := make([]domain.ChatMessage, 0)
	for _, m := range s.messages {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			messages = append(messages, m)
		}
	}

	slices.SortStableFunc(messages, func(x, y domain.ChatMessage) int {
		return x.CreatedAt.Compare(y.CreatedAt)
	})

	return messages, nil
}

func (s *MemoryMessageStore) DeleteBySender(ctx context.Context, id string, sender domain.UserID) (domain.ChatMessage, error) {
	s.Lock()
	defer s.Unlock()

	for i, m := range s.messages {
		if m.ID == id && m.Sender == sender {
			s.messages = slices.Delete(s.messages, i, i+1)
			return m, nil
		}
	}

	return domain.ChatMessage{}, domain.ErrNotFound
}

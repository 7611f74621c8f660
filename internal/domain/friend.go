package domain

import (
	"fmt"
	"time"
)

type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
	FriendBlocked  FriendStatus = "blocked"
)

func ParseFriendStatus(s string) (FriendStatus, error) {
	switch status := FriendStatus(s); status {
	case FriendPending, FriendAccepted, FriendBlocked:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

type FriendRelationship struct {
	ID        string       `json:"id"`
	Requester UserID       `json:"userId"`
	Target    UserID       `json:"friendId"`
	Status    FriendStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Involves reports whether the user is one side of the relationship.
func (f FriendRelationship) Involves(userID UserID) bool {
	return f.Requester == userID || f.Target == userID
}

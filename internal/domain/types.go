package domain

// UserID is the canonical identifier of an authenticated user. It is only
// ever obtained from an IdentityVerifier.
type UserID string

type ConnectionID string

// RoomID identifies an ephemeral pairing of two users' connections.
type RoomID string

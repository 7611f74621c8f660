package domain

import "encoding/json"

// Inbound commands.
const (
	EventRegisterUser = "register-user"
	EventRegisterRoom = "register-room"
	EventSendMessage  = "send-message"
)

// Outbound events.
const (
	EventRoomReady             = "room-ready"
	EventPeerOffline           = "peer-offline"
	EventMessageReceived       = "message-received"
	EventFriendRequestSent     = "friend-request-sent"
	EventFriendRequestReceived = "friend-request-received"
	EventFriendAccepted        = "friend-accepted"
	EventFriendBlocked         = "friend-blocked"
	EventFriendDeleted         = "friend-deleted"
	EventRegistered            = "registered"
	EventRegistrationFailed    = "registration-failed"
	EventError                 = "error"
)

type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

type RoomReady struct {
	PeerID  UserID `json:"peerId"`
	RoomID  RoomID `json:"roomId"`
	Message string `json:"message"`
}

type MessageReceived struct {
	RoomID     RoomID `json:"roomId"`
	Text       string `json:"text"`
	SenderName string `json:"senderName"`
}

type FriendNotification struct {
	Message string             `json:"message"`
	Data    FriendRelationship `json:"data"`
}

type Registered struct {
	UserID UserID `json:"userId"`
}

// Notice is the payload of peer-offline, registration-failed and error.
type Notice struct {
	Message string `json:"message"`
}

// Envelope is a user-scoped event travelling between instances.
type Envelope struct {
	Origin  string          `json:"origin"`
	Target  UserID          `json:"target"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

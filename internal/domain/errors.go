package domain

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid identity token")
	ErrSessionClosed    = errors.New("session closed")
	ErrNotIdentified    = errors.New("connection is not registered")
	ErrNotRoomMember    = errors.New("connection is not a member of the room")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyRequested = errors.New("friend request already sent")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrForbidden        = errors.New("forbidden")
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")
)

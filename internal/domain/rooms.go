package domain

import "sync"

// RoomMembership groups connections into rooms. It is independent from the
// ConnectionRegistry: membership is per connection, not per user. Only
// tracked connections can join a room, so a connection forgotten while a
// room is being set up never ends up as a member.
type RoomMembership struct {
	mu    sync.RWMutex
	rooms map[RoomID]map[ConnectionID]Connection
	conns map[ConnectionID]map[RoomID]struct{}
}

func NewRoomMembership() *RoomMembership {
	return &RoomMembership{
		rooms: make(map[RoomID]map[ConnectionID]Connection),
		conns: make(map[ConnectionID]map[RoomID]struct{}),
	}
}

// Track makes the connection eligible to join rooms.
func (m *RoomMembership) Track(connID ConnectionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conns[connID]; !ok {
		m.conns[connID] = make(map[RoomID]struct{})
	}
}

// Join adds the tracked connections to the room and returns them. Untracked
// connections are skipped. No room is created when none joins.
func (m *RoomMembership) Join(roomID RoomID, conns ...Connection) []Connection {
	m.mu.Lock()
	defer m.mu.Unlock()

	joined := make([]Connection, 0, len(conns))
	for _, c := range conns {
		rooms, ok := m.conns[c.ID()]
		if !ok {
			continue
		}

		members, ok := m.rooms[roomID]
		if !ok {
			members = make(map[ConnectionID]Connection, len(conns))
			m.rooms[roomID] = members
		}

		members[c.ID()] = c
		rooms[roomID] = struct{}{}
		joined = append(joined, c)
	}

	return joined
}

// LeaveAll removes the connection from every room it joined and drops rooms
// left without members. The connection stays tracked. It returns the rooms
// the connection was in.
func (m *RoomMembership) LeaveAll(connID ConnectionID) []RoomID {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.leaveAll(connID)
}

// Forget removes the connection from every room and stops tracking it.
func (m *RoomMembership) Forget(connID ConnectionID) []RoomID {
	m.mu.Lock()
	defer m.mu.Unlock()

	left := m.leaveAll(connID)
	delete(m.conns, connID)

	return left
}

func (m *RoomMembership) leaveAll(connID ConnectionID) []RoomID {
	rooms := m.conns[connID]
	if len(rooms) == 0 {
		return nil
	}

	left := make([]RoomID, 0, len(rooms))
	for roomID := range rooms {
		left = append(left, roomID)

		members := m.rooms[roomID]
		delete(members, connID)
		if len(members) == 0 {
			delete(m.rooms, roomID)
		}
		delete(rooms, roomID)
	}

	return left
}

func (m *RoomMembership) Members(roomID RoomID) []Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	members := m.rooms[roomID]
	if len(members) == 0 {
		return nil
	}

	conns := make([]Connection, 0, len(members))
	for _, c := range members {
		conns = append(conns, c)
	}

	return conns
}

func (m *RoomMembership) IsMember(roomID RoomID, connID ConnectionID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.rooms[roomID][connID]
	return ok
}

func (m *RoomMembership) IsTracked(connID ConnectionID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.conns[connID]
	return ok
}

// Len returns the number of rooms with at least one member.
func (m *RoomMembership) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.rooms)
}

package domain

import (
	"slices"
	"sync"
)

// ConnectionRegistry maps verified users to their live connections.
//
// A user entry exists iff it owns at least one connection, and a connection
// is registered under at most one user. Every method is a single critical
// section: callers never observe a partially applied update.
type ConnectionRegistry struct {
	mu     sync.RWMutex
	byUser map[UserID][]Connection
	byConn map[ConnectionID]UserID
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		byUser: make(map[UserID][]Connection),
		byConn: make(map[ConnectionID]UserID),
	}
}

// Register adds conn to the set of userID. It reports whether userID had no
// live connection before the call. Registering a connection already owned by
// another user moves it.
func (r *ConnectionRegistry) Register(userID UserID, conn Connection) bool {
	if userID == "" || conn == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byConn[conn.ID()]; ok {
		if owner == userID {
			return false
		}
		r.removeLocked(owner, conn.ID())
	}

	first := len(r.byUser[userID]) == 0
	r.byUser[userID] = append(r.byUser[userID], conn)
	r.byConn[conn.ID()] = userID

	return first
}

// Unregister removes conn from its owner. Unknown connections are ignored:
// a client may disconnect before it ever registered.
func (r *ConnectionRegistry) Unregister(conn Connection) (userID UserID, last bool, found bool) {
	if conn == nil {
		return "", false, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.byConn[conn.ID()]
	if !ok {
		return "", false, false
	}

	return owner, r.removeLocked(owner, conn.ID()), true
}

func (r *ConnectionRegistry) removeLocked(userID UserID, connID ConnectionID) bool {
	delete(r.byConn, connID)

	conns := slices.DeleteFunc(r.byUser[userID], func(c Connection) bool {
		return c.ID() == connID
	})
	if len(conns) == 0 {
		delete(r.byUser, userID)
		return true
	}

	r.byUser[userID] = conns
	return false
}

// Lookup returns a copy of the live connections of userID in connection
// order. Unknown users yield an empty result.
func (r *ConnectionRegistry) Lookup(userID UserID) []Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.byUser[userID])
}

// Entries is a snapshot of the whole registry.
func (r *ConnectionRegistry) Entries() map[UserID][]ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make(map[UserID][]ConnectionID, len(r.byUser))
	for userID, conns := range r.byUser {
		ids := make([]ConnectionID, 0, len(conns))
		for _, c := range conns {
			ids = append(ids, c.ID())
		}
		entries[userID] = ids
	}

	return entries
}

// Len returns the number of users with at least one live connection.
func (r *ConnectionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byUser)
}

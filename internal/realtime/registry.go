package realtime

import "sync"

// Connection is a live client endpoint. Send must not block.
type Connection interface {
	ID() string
	Send(frame []byte) bool
}

// Registry maps channels (user ids, or StaffChannel) to live connections.
// One connection may be joined to several channels.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]map[string]Connection
	joined   map[string]map[string]struct{} // conn id -> channels
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]map[string]Connection),
		joined:   make(map[string]map[string]struct{}),
	}
}

func (r *Registry) Join(channel string, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.channels[channel]
	if !ok {
		members = make(map[string]Connection)
		r.channels[channel] = members
	}
	members[conn.ID()] = conn

	chans, ok := r.joined[conn.ID()]
	if !ok {
		chans = make(map[string]struct{})
		r.joined[conn.ID()] = chans
	}
	chans[channel] = struct{}{}
}

// Leave drops every binding of conn. Unknown connections are ignored.
func (r *Registry) Leave(conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for channel := range r.joined[conn.ID()] {
		members := r.channels[channel]
		delete(members, conn.ID())
		if len(members) == 0 {
			delete(r.channels, channel)
		}
	}
	delete(r.joined, conn.ID())
}

// ConnectionsFor returns a snapshot; callers may send without holding the lock.
func (r *Registry) ConnectionsFor(channel string) []Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.channels[channel]
	out := make([]Connection, 0, len(members))
	for _, c := range members {
		out = append(out, c)
	}
	return out
}

// Count returns the number of channel bindings.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, members := range r.channels {
		n += len(members)
	}
	return n
}

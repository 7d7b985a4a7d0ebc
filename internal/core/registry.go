package core

import (
	"sync"

	"github.com/collabcode/collabcode-server/internal/proto"
)

// Registry maps room ids to their live connections and performs fan-out.
// All methods are safe for concurrent use: connection goroutines mutate
// membership and broadcast in parallel, so the rooms map is lock-guarded.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Join adds a client to the room's member set, creating it if absent.
func (r *Registry) Join(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[*Client]struct{})
		r.rooms[roomID] = members
	}
	members[c] = struct{}{}
}

// Leave removes a client from the room's member set. The room entry is
// pruned as soon as it empties, so a room id is present iff it has at
// least one live member. Safe to call for a client that never joined.
func (r *Registry) Leave(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(r.rooms, roomID)
	}
}

// Count returns the number of live members in a room, 0 if it has no entry.
func (r *Registry) Count(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms[roomID])
}

// Broadcast sends msg to every member of the room. When includeSender is
// false the sender connection is skipped. Each delivery is independent:
// a member with a full outbound buffer drops the message rather than
// blocking or aborting delivery to the rest of the room.
func (r *Registry) Broadcast(roomID string, msg proto.Outbound, sender *Client, includeSender bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for member := range r.rooms[roomID] {
		if !includeSender && sender != nil && member == sender {
			continue
		}
		select {
		case member.Out <- msg:
		default:
			// Drop if slow consumer.
		}
	}
}

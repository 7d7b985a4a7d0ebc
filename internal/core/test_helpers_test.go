package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/collabcode/collabcode-server/internal/proto"
	"github.com/collabcode/collabcode-server/internal/store"
)

// fakeStore is an in-memory store.Store for session tests.
type fakeStore struct {
	mu    sync.Mutex
	rooms map[string]*store.Room
}

func newFakeStore(ids ...string) *fakeStore {
	f := &fakeStore{rooms: make(map[string]*store.Room)}
	for _, id := range ids {
		f.rooms[id] = &store.Room{ID: id, UpdatedAt: time.Now()}
	}
	return f
}

func (f *fakeStore) CreateRoom(context.Context) (*store.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room := &store.Room{ID: "room-" + time.Now().Format("150405.000000000"), UpdatedAt: time.Now()}
	f.rooms[room.ID] = room
	return room, nil
}

func (f *fakeStore) GetRoom(_ context.Context, id string) (*store.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return nil, store.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

func (f *fakeStore) SetCode(_ context.Context, id, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return store.ErrRoomNotFound
	}
	room.Code = code
	room.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) Close() error { return nil }

func mustMessage(t *testing.T, c *Client) proto.Outbound {
	t.Helper()

	select {
	case msg := <-c.Out:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("client %s: expected message not received", c.ID)
		return nil
	}
}

func mustNoMessage(t *testing.T, c *Client) {
	t.Helper()

	select {
	case msg := <-c.Out:
		t.Fatalf("client %s: unexpected message %+v", c.ID, msg)
	default:
	}
}

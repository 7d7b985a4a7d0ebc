package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/collabcode/collabcode-server/internal/store"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestCreateAndGetRoom(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	room, err := s.CreateRoom(ctx)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.ID == "" {
		t.Fatal("created room has empty id")
	}
	if room.Code != "" {
		t.Fatalf("new room code = %q, want empty", room.Code)
	}
	if room.UpdatedAt.IsZero() {
		t.Fatal("new room has zero updated_at")
	}

	got, err := s.GetRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if got.ID != room.ID {
		t.Fatalf("GetRoom id = %q, want %q", got.ID, room.ID)
	}
}

func TestGetRoomNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRoom(context.Background(), "missing")
	if !errors.Is(err, store.ErrRoomNotFound) {
		t.Fatalf("GetRoom = %v, want ErrRoomNotFound", err)
	}
}

func TestSetCodeOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	room, err := s.CreateRoom(ctx)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	writes := []string{"x=1", "x=2", ""}
	for _, code := range writes {
		if err := s.SetCode(ctx, room.ID, code); err != nil {
			t.Fatalf("SetCode(%q): %v", code, err)
		}
		got, err := s.GetRoom(ctx, room.ID)
		if err != nil {
			t.Fatalf("GetRoom: %v", err)
		}
		if got.Code != code {
			t.Fatalf("code = %q, want %q", got.Code, code)
		}
	}
}

func TestSetCodeRefreshesUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	room, err := s.CreateRoom(ctx)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	// Push the timestamp into the past so the refresh is observable even
	// when create and update land within the same clock tick.
	if _, err := s.db.ExecContext(ctx,
		`UPDATE rooms SET updated_at = '2000-01-01 00:00:00' WHERE id = ?`, room.ID); err != nil {
		t.Fatalf("backdate updated_at: %v", err)
	}
	before, err := s.GetRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}

	if err := s.SetCode(ctx, room.ID, "x=1"); err != nil {
		t.Fatalf("SetCode: %v", err)
	}

	after, err := s.GetRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("updated_at not refreshed: before=%v after=%v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestSetCodeUnknownRoom(t *testing.T) {
	s := newTestStore(t)

	err := s.SetCode(context.Background(), "missing", "x=1")
	if !errors.Is(err, store.ErrRoomNotFound) {
		t.Fatalf("SetCode = %v, want ErrRoomNotFound", err)
	}
}

func TestRoomsAreIndependent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.CreateRoom(ctx)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	second, err := s.CreateRoom(ctx)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("rooms share id %q", first.ID)
	}

	if err := s.SetCode(ctx, first.ID, "x=1"); err != nil {
		t.Fatalf("SetCode: %v", err)
	}

	got, err := s.GetRoom(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if got.Code != "" {
		t.Fatalf("second room code = %q, want empty", got.Code)
	}
}

package store

import (
	"context"
	"errors"
	"time"
)

// ErrRoomNotFound is returned when a room id has no persisted row.
var ErrRoomNotFound = errors.New("room not found")

// Room is the persisted collaborative document.
type Room struct {
	ID        string
	Code      string
	UpdatedAt time.Time
}

// Store handles room persistence.
type Store interface {
	// CreateRoom creates a room with a fresh id and empty code.
	CreateRoom(ctx context.Context) (*Room, error)

	// GetRoom retrieves a room by id. Returns ErrRoomNotFound if absent.
	GetRoom(ctx context.Context, id string) (*Room, error)

	// SetCode overwrites the room's code and refreshes its updated_at.
	// Last write wins; there is no version check.
	SetCode(ctx context.Context, id, code string) error

	// Close closes the underlying database connection.
	Close() error
}

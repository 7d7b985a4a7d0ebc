package core

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/collabcode/collabcode-server/internal/proto"
	"github.com/collabcode/collabcode-server/internal/store"
)

// Session drives the per-connection room protocol: it validates the room
// on attach, dispatches inbound messages while the connection is active,
// and announces presence when the connection detaches.
type Session struct {
	registry *Registry
	store    store.Store
	log      *zerolog.Logger
}

// NewSession builds a session protocol driver over a registry and store.
func NewSession(registry *Registry, st store.Store, logger *zerolog.Logger) *Session {
	return &Session{
		registry: registry,
		store:    st,
		log:      logger,
	}
}

// Attach validates the client's room against the store and, if it exists,
// registers the client, sends it the current document state, and announces
// the new presence count to the whole room (joiner included).
//
// Returns store.ErrRoomNotFound without any registry side effects when the
// room does not exist; the caller rejects the connection.
func (s *Session) Attach(ctx context.Context, client *Client) error {
	room, err := s.store.GetRoom(ctx, client.Room)
	if err != nil {
		return err
	}

	s.registry.Join(client.Room, client)
	client.Out <- proto.NewState(room.Code, 0, proto.SenderServer)
	s.registry.Broadcast(client.Room, proto.NewPresence(s.registry.Count(client.Room)), nil, true)

	s.log.Info().
		Str("room_id", client.Room).
		Str("client_id", client.ID).
		Int("members", s.registry.Count(client.Room)).
		Msg("client joined room")

	return nil
}

// HandleInbound dispatches one raw frame from the client, in receipt order.
// Malformed payloads and unknown message types are dropped without
// notifying the sender. A persistence failure is returned and ends the
// connection; it does not affect other members beyond the presence update
// the caller's detach will broadcast.
func (s *Session) HandleInbound(ctx context.Context, client *Client, raw []byte) error {
	in, err := proto.DecodeInbound(raw)
	if err != nil {
		s.log.Debug().
			Str("room_id", client.Room).
			Str("client_id", client.ID).
			Msg("dropping malformed message")
		return nil
	}

	switch in.Type {
	case proto.TypeUpdate:
		// Persist before broadcasting so a late joiner reading the store
		// sees the newest value. Last write wins across concurrent peers.
		if err := s.store.SetCode(ctx, client.Room, in.Code); err != nil {
			return err
		}
		s.registry.Broadcast(client.Room, proto.NewState(in.Code, in.Cursor, proto.SenderPeer), client, false)

	case proto.TypeChat:
		user := "anon"
		if in.User != nil {
			user = *in.User
		}
		// No persistence; the sender renders its own line from the echo.
		s.registry.Broadcast(client.Room, proto.NewChat(user, in.Text), client, true)

	default:
		s.log.Debug().
			Str("room_id", client.Room).
			Str("type", in.Type).
			Msg("ignoring unknown message type")
	}

	return nil
}

// Detach removes the client from its room and announces the decremented
// presence count to the remaining members.
func (s *Session) Detach(client *Client) {
	s.registry.Leave(client.Room, client)
	s.registry.Broadcast(client.Room, proto.NewPresence(s.registry.Count(client.Room)), nil, true)

	s.log.Info().
		Str("room_id", client.Room).
		Str("client_id", client.ID).
		Int("members", s.registry.Count(client.Room)).
		Msg("client left room")
}

// Inject broadcasts a chat message into a room on behalf of a caller that
// has no connection of its own, such as the AI assistant endpoint.
func (s *Session) Inject(roomID, user, text string) {
	s.registry.Broadcast(roomID, proto.NewChat(user, text), nil, true)
}

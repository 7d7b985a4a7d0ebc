package core

import "github.com/collabcode/collabcode-server/internal/proto"

// outBuffer bounds pending outbound messages per connection. A participant
// that cannot drain its channel loses messages instead of blocking the room.
const outBuffer = 32

// Client is one live room connection as seen by the core layer.
// It belongs to exactly one room for its lifetime; the transport layer
// drains Out and writes each message to the underlying connection.
type Client struct {
	ID   string
	Room string
	Out  chan proto.Outbound
}

// NewClient constructs a client bound to a room with an initialized
// outbound channel.
func NewClient(id, roomID string) *Client {
	return &Client{
		ID:   id,
		Room: roomID,
		Out:  make(chan proto.Outbound, outBuffer),
	}
}

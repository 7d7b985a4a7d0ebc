package proto

import (
	"encoding/json"
	"fmt"
)

// Message types carried over the room connection.
const (
	TypeUpdate   = "update"
	TypeChat     = "chat"
	TypeState    = "state"
	TypePresence = "presence"
)

// Sender tags for state messages.
const (
	SenderServer = "server"
	SenderPeer   = "peer"
)

// StatusRoomNotFound closes a connection that targets a room the store
// does not know about. Application-defined close code in the 4xxx range.
const StatusRoomNotFound = 4400

// Inbound is the envelope for messages coming from a room participant.
// The Type discriminator decides which of the remaining fields are used.
// User is a pointer so an absent field (defaulted by the session) can be
// told apart from an explicit empty string (kept as sent).
type Inbound struct {
	Type   string  `json:"type"`
	Code   string  `json:"code,omitempty"`
	Cursor int     `json:"cursor,omitempty"`
	User   *string `json:"user,omitempty"`
	Text   string  `json:"text,omitempty"`
}

// DecodeInbound parses a raw frame into an Inbound envelope.
// A payload that is not a JSON object with a string type is a decode error;
// the session loop drops those without notifying the sender.
func DecodeInbound(data []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Inbound{}, fmt.Errorf("decode inbound: %w", err)
	}
	if in.Type == "" {
		return Inbound{}, fmt.Errorf("decode inbound: missing type")
	}
	return in, nil
}

// Outbound is the closed set of messages the server emits to participants.
type Outbound interface {
	outbound()
}

// State carries the current document text to one or more participants.
type State struct {
	Type   string `json:"type"`
	Code   string `json:"code"`
	Cursor int    `json:"cursor"`
	Sender string `json:"sender"`
}

// Presence carries the live participant count of a room.
type Presence struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Chat carries a chat line between participants.
type Chat struct {
	Type string `json:"type"`
	User string `json:"user"`
	Text string `json:"text"`
}

func (State) outbound()    {}
func (Presence) outbound() {}
func (Chat) outbound()     {}

// NewState builds a state message with the given sender tag.
func NewState(code string, cursor int, sender string) State {
	return State{Type: TypeState, Code: code, Cursor: cursor, Sender: sender}
}

// NewPresence builds a presence message for the given member count.
func NewPresence(count int) Presence {
	return Presence{Type: TypePresence, Count: count}
}

// NewChat builds a chat message.
func NewChat(user, text string) Chat {
	return Chat{Type: TypeChat, User: user, Text: text}
}

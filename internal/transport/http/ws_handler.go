package http

import (
	"context"
	"errors"
	"io"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/collabcode/collabcode-server/internal/core"
	"github.com/collabcode/collabcode-server/internal/proto"
	"github.com/collabcode/collabcode-server/internal/store"
	"github.com/collabcode/collabcode-server/internal/utils"
)

// WSHandler upgrades room connections and bridges them to the session
// protocol.
type WSHandler struct {
	session *core.Session
	log     *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(session *core.Session, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{session: session, log: logger}
}

// Handle serves one room connection.
// GET /ws/:roomId
func (h *WSHandler) Handle(c *gin.Context) {
	roomID := c.Param("roomId")

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Str("room_id", roomID).Msg("ws accept error")
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	client := core.NewClient(utils.NewID(), roomID)

	if err := h.session.Attach(ctx, client); err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			_ = conn.Close(websocket.StatusCode(proto.StatusRoomNotFound), "room not found")
			return
		}
		h.log.Error().Err(err).Str("room_id", roomID).Msg("failed to attach client")
		_ = conn.Close(websocket.StatusInternalError, "internal error")
		return
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	// Close before detaching so an abnormal session ends with the internal
	// error code; a close failure must not stop the presence broadcast.
	if isClientGone(err) {
		_ = conn.Close(websocket.StatusNormalClosure, "closing")
	} else {
		h.log.Warn().Err(err).Str("client_id", client.ID).Msg("ws connection closed with error")
		_ = conn.Close(websocket.StatusInternalError, "internal error")
	}

	h.session.Detach(client)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if err := h.session.HandleInbound(ctx, client, data); err != nil {
			return err
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case msg := <-client.Out:
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				h.log.Error().Err(err).Str("client_id", client.ID).Msg("write ws message")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// isClientGone reports whether the loops ended because the client went
// away (clean close or dropped transport) rather than a server-side error.
func isClientGone(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return true
	}
	return websocket.CloseStatus(err) != -1
}

package websocket

import (
	"context"
	"encoding/json"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/service/notifier"
)

// SessionStreamHandler serves the customer-facing push channel: one websocket
// connection carries at most one update, the session's validation.
type SessionStreamHandler struct {
	hub     *Hub
	watcher *notifier.Watcher
	log     *zap.Logger
}

func NewSessionStreamHandler(hub *Hub, watcher *notifier.Watcher, log *zap.Logger) *SessionStreamHandler {
	return &SessionStreamHandler{
		hub:     hub,
		watcher: watcher,
		log:     log,
	}
}

// HandleSessionStream blocks for the lifetime of the connection. The watch is
// released when it fires or when the connection closes, whichever comes
// first.
func (h *SessionStreamHandler) HandleSessionStream(c *websocket.Conn, user *domain.User) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle, err := h.watcher.Watch(ctx, user.ID, func(session domain.ParkingSession) {
		data, err := json.Marshal(session)
		if err != nil {
			h.log.Error("Failed to marshal session update", zap.Error(err))
			return
		}
		h.hub.SendToUser(user.ID, data)
	})
	if err != nil {
		h.log.Error("Failed to start session watch",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		c.Close()
		return
	}
	if handle == nil {
		// Nothing to watch; close rather than hold an idle connection.
		c.WriteMessage(websocket.CloseMessage, []byte{})
		c.Close()
		return
	}
	defer handle.Stop()

	h.hub.ServeClient(c, user.ID, cancel)
}

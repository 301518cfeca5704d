package handlers

import (
	"time"

	"github.com/Footprint-meow/Footprint-BackEnd/internal/handlers/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketHandler struct {
	hub *ws.Hub
}

func NewWebSocketHandler() *WebSocketHandler {
	return &WebSocketHandler{hub: ws.NewHub()}
}

// GetHub returns the hub instance (useful for pushing events from other handlers)
func (h *WebSocketHandler) GetHub() *ws.Hub {
	return h.hub
}

// HandleWebSocket keeps a host's notification socket open. The socket is
// push-only; client frames are drained solely to service pings and detect
// disconnects.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	memberID, ok := c.Locals("memberID").(string)
	if !ok || memberID == "" {
		_ = c.Close()
		return
	}

	h.hub.Register(memberID, c)
	defer h.hub.Unregister(memberID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
		c.SetReadDeadline(time.Now().Add(90 * time.Second))
	}
}

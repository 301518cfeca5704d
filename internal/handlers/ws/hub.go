package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

// ClientConnection wraps a host's WebSocket connection with metadata
type ClientConnection struct {
	Conn       *websocket.Conn
	MemberID   string
	LastPong   time.Time
	PingTicker *time.Ticker
	CloseChan  chan struct{}
}

// Hub tracks which guestbook hosts hold an open notification socket and
// pushes footprint events to them. Delivery is best-effort; the
// guestbook's unread flag stays the durable signal.
type Hub struct {
	clients      map[string]*ClientConnection
	clientsMux   sync.RWMutex
	pingInterval time.Duration
	pongTimeout  time.Duration
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	hub := &Hub{
		clients:      make(map[string]*ClientConnection),
		pingInterval: 30 * time.Second,
		pongTimeout:  90 * time.Second,
	}

	go hub.connectionHealthChecker()

	return hub
}

// Register adds a host connection with health monitoring
func (h *Hub) Register(memberID string, conn *websocket.Conn) {
	clientConn := &ClientConnection{
		Conn:       conn,
		MemberID:   memberID,
		LastPong:   time.Now(),
		PingTicker: time.NewTicker(h.pingInterval),
		CloseChan:  make(chan struct{}),
	}

	conn.SetPongHandler(func(appData string) error {
		h.clientsMux.Lock()
		if client, exists := h.clients[memberID]; exists {
			client.LastPong = time.Now()
		}
		h.clientsMux.Unlock()
		return nil
	})

	conn.SetReadDeadline(time.Now().Add(h.pongTimeout))

	h.clientsMux.Lock()
	h.clients[memberID] = clientConn
	total := len(h.clients)
	h.clientsMux.Unlock()

	go h.pingRoutine(clientConn)

	log.Printf("Host %s connected to hub (total: %d)", memberID, total)
}

// Unregister removes a host connection
func (h *Hub) Unregister(memberID string) {
	h.clientsMux.Lock()
	if client, exists := h.clients[memberID]; exists {
		if client.PingTicker != nil {
			client.PingTicker.Stop()
		}
		close(client.CloseChan)
	}
	delete(h.clients, memberID)
	count := len(h.clients)
	h.clientsMux.Unlock()
	log.Printf("Host %s disconnected from hub (total: %d)", memberID, count)
}

// IsOnline checks if a host is connected
func (h *Hub) IsOnline(memberID string) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	_, exists := h.clients[memberID]
	return exists
}

// SendToHost pushes an event to a connected host. Offline hosts are
// silently skipped.
func (h *Hub) SendToHost(memberID string, data interface{}) error {
	h.clientsMux.RLock()
	clientConn, exists := h.clients[memberID]
	h.clientsMux.RUnlock()

	if !exists {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling event for host %s: %v", memberID, err)
		return err
	}

	if err := clientConn.Conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
		log.Printf("Error sending event to host %s: %v", memberID, err)
		h.Unregister(memberID)
		return err
	}
	return nil
}

// Count returns the number of connected hosts
func (h *Hub) Count() int {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	return len(h.clients)
}

// pingRoutine sends periodic ping messages to keep the connection alive
func (h *Hub) pingRoutine(client *ClientConnection) {
	for {
		select {
		case <-client.CloseChan:
			return
		case <-client.PingTicker.C:
			h.clientsMux.RLock()
			_, exists := h.clients[client.MemberID]
			h.clientsMux.RUnlock()

			if !exists {
				return
			}

			if err := client.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				log.Printf("Ping failed for host %s: %v", client.MemberID, err)
				h.Unregister(client.MemberID)
				return
			}
		}
	}
}

// connectionHealthChecker removes connections whose pongs stopped coming
func (h *Hub) connectionHealthChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		h.clientsMux.RLock()
		dead := make([]string, 0)
		now := time.Now()
		for memberID, client := range h.clients {
			if now.Sub(client.LastPong) > h.pongTimeout {
				dead = append(dead, memberID)
			}
		}
		h.clientsMux.RUnlock()

		for _, memberID := range dead {
			log.Printf("Removing dead connection for host %s (no pong received)", memberID)
			h.Unregister(memberID)
		}
	}
}

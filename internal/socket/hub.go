// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks connected WebSocket clients, keyed by account id. Riders
// and drivers connect to receive booking events.
type Hub struct {
	clients map[string]*websocket.Conn
	// roles remembers the role each connection authenticated with, so
	// events can be broadcast to all drivers.
	roles map[string]string
	mu    sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		roles:   make(map[string]string),
	}
}

// Register adds a client to the Hub.
func (h *Hub) Register(userID, role string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	h.roles[userID] = role
	log.Printf("WebSocket client registered: %s (%s)", userID, role)
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		delete(h.roles, userID)
		log.Printf("WebSocket client unregistered: %s", userID)
	}
}

// Send delivers a message to one client. An offline client is not an error.
func (h *Hub) Send(userID string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[userID]
	if !ok {
		log.Printf("WebSocket client not found, could not send message: %s", userID)
		return nil
	}

	return conn.WriteMessage(websocket.TextMessage, message)
}

// SendEvent marshals an event payload and delivers it to one client.
func (h *Hub) SendEvent(userID string, event string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := h.Send(userID, message); err != nil {
		log.Printf("Failed to send %s event to %s: %v", event, userID, err)
	}
}

// BroadcastToDrivers delivers an event to every connected driver.
func (h *Hub) BroadcastToDrivers(event string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for userID, role := range h.roles {
		if role != "driver" {
			continue
		}
		if conn, ok := h.clients[userID]; ok {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Failed to send %s event to driver %s: %v", event, userID, err)
			}
		}
	}
}

// Package ws implements the websocket transport: the per-room broadcast
// groups and the event loop binding a connection to a room.
package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/navikt/vrooms/internal/models"
)

// Hub maintains the broadcast groups: the set of live connections bound
// to each room code. It implements service.Broadcaster.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

// register enrolls a bound client in its room's broadcast group.
func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[client.room] == nil {
		h.rooms[client.room] = make(map[*Client]bool)
	}
	h.rooms[client.room][client] = true
}

// unregister removes a client from its broadcast group. Safe to call
// for clients that were never registered. The send channel stays open;
// closing it is the disconnect path's job, and because unregister takes
// the write lock it cannot return while a broadcast still holds the
// read lock and may be sending to this client.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[client.room]
	if !ok {
		return
	}

	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
}

// BroadcastToRoom sends an event to every connection bound to a room.
// A client whose send buffer is full has its connection closed; its
// read loop then runs the regular unbind path.
func (h *Hub) BroadcastToRoom(code string, event *models.ServerEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error encoding event for room %s: %v", code, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[code] {
		select {
		case client.send <- data:
		default:
			go client.conn.Close()
		}
	}
}

// RoomClients returns the number of connections bound to a room.
func (h *Hub) RoomClients(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[code])
}

// Shutdown closes every connection so their read loops unwind through
// the regular unbind path.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.rooms {
		for client := range clients {
			client.conn.Close()
		}
	}
}

// file: internals/realtime/hub.go
package realtime

import (
	"log"
	"sync"

	"github.com/bytedance/sonic"
)

// Client is one connected subscriber. Send is buffered; a subscriber that
// cannot keep up gets dropped rather than blocking the publisher.
type Client struct {
	Rooms []string
	Send  chan []byte
}

func NewClient(rooms ...string) *Client {
	return &Client{
		Rooms: rooms,
		Send:  make(chan []byte, 32),
	}
}

// Hub fans events out to room subscribers. Register/Unregister must be
// paired 1:1 with the connection lifecycle or the room maps leak.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register/unregister. Start once from main.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range c.Rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*Client]bool)
		}
		h.rooms[room][c] = true
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range c.Rooms {
		if clients, ok := h.rooms[room]; ok {
			if clients[c] {
				delete(clients, c)
				if len(clients) == 0 {
					delete(h.rooms, room)
				}
			}
		}
	}
	// safe: Publish only sends while the client is still in a room map,
	// and both paths hold the lock
	close(c.Send)
}

// Publish sends the event to every subscriber of the given rooms.
// Slow clients are skipped; the socket is a live feed, not a queue.
func (h *Hub) Publish(ev Event, rooms ...string) {
	bytes, err := sonic.Marshal(ev)
	if err != nil {
		log.Printf("[ERROR] event marshal %s: %v", ev.Name, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[*Client]bool)
	for _, room := range rooms {
		for client := range h.rooms[room] {
			if seen[client] {
				continue
			}
			seen[client] = true
			select {
			case client.Send <- bytes:
			default:
			}
		}
	}
}

// RoomCount reports how many subscribers a room has.
func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

package server

import (
	"encoding/json"
	"sync"
)

// ChangeEvent is pushed to every websocket subscriber after a mutation.
// Clients treat it as a hint to re-fetch; it carries no item data.
type ChangeEvent struct {
	Type string `json:"type"` // always "changed"
	ID   int64  `json:"id,omitempty"`
}

// conn is one websocket subscriber. Send is closed on unregister.
type conn struct {
	send chan []byte
}

// Hub fans mutation events out to connected websocket clients.
type Hub struct {
	mu         sync.RWMutex
	conns      map[*conn]bool
	register   chan *conn
	unregister chan *conn
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		conns:      make(map[*conn]bool),
		register:   make(chan *conn),
		unregister: make(chan *conn),
		broadcast:  make(chan []byte),
	}
}

// Start launches the hub loop in a background goroutine.
func (h *Hub) Start() {
	go h.Run()
}

// Run services the hub's channels until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.conns[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[c]; ok {
				delete(h.conns, c)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.conns {
				select {
				case c.send <- msg:
				default:
					// slow consumer, drop it
					close(c.send)
					delete(h.conns, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify broadcasts a change event for the given item ID (0 for "something
// changed").
func (h *Hub) Notify(id int64) error {
	b, err := json.Marshal(ChangeEvent{Type: "changed", ID: id})
	if err != nil {
		return err
	}
	h.broadcast <- b
	return nil
}

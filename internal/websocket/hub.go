package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks connected clients by user and fans presence events out to
// chosen targets. It holds no domain state; handlers decide who hears
// what.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastRequest
	stop       chan struct{}
	done       chan struct{}
	stopped    bool
	mu         sync.RWMutex
}

type broadcastRequest struct {
	targets []uuid.UUID
	data    []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastRequest, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, conns := range h.clients {
				for client := range conns {
					client.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				if h.clients[client.userID] == nil {
					h.clients[client.userID] = make(map[*Client]bool)
				}
				h.clients[client.userID][client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if conns, ok := h.clients[client.userID]; ok && conns[client] {
					delete(conns, client)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
					client.Close()
				}
			}
			h.mu.Unlock()

		case req := <-h.broadcast:
			h.mu.RLock()
			for _, target := range req.targets {
				for client := range h.clients[target] {
					client.enqueue(req.data)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop shuts the hub down and closes every client connection.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast delivers msg to every connection of every target user.
// Dropped silently once the hub is stopped.
func (h *Hub) Broadcast(targets []uuid.UUID, msg *Message) {
	if len(targets) == 0 {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal presence message: %v", err)
		return
	}

	select {
	case h.broadcast <- &broadcastRequest{targets: targets, data: data}:
	case <-h.done:
	}
}

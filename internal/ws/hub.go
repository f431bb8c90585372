package ws

import (
	"context"
	"log/slog"
	"sync"
)

// Hub tracks connected clients and serializes their messages onto one
// goroutine.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Incoming   chan *ClientMessage
	mu         sync.RWMutex

	// OnMessage is called for each incoming client message.
	OnMessage func(cm *ClientMessage)
	// OnDisconnect is called after a client is unregistered.
	OnDisconnect func(client *Client)
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Incoming:   make(chan *ClientMessage, 256),
	}
}

// Run processes registrations and messages until ctx is cancelled. On exit
// every client's Send channel is closed so its write pump shuts the
// connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			slog.Info("client connected", "client", client.ID)

		case client := <-h.Unregister:
			h.mu.Lock()
			_, ok := h.Clients[client]
			delete(h.Clients, client)
			h.mu.Unlock()
			if !ok {
				continue
			}
			slog.Info("client disconnected", "client", client.ID)
			// Leave the room first so its ticker stops addressing the client.
			if h.OnDisconnect != nil {
				h.OnDisconnect(client)
			}
			client.Close()

		case cm := <-h.Incoming:
			if h.OnMessage != nil {
				h.OnMessage(cm)
			}
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.Clients {
		client.Close()
		delete(h.Clients, client)
	}
	slog.Info("hub stopped")
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}

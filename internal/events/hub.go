package events

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/shutterbox/shutterbox_server/internal/gallery"
)

// Hub fans completed-upload notifications out to connected websocket
// clients. Broadcast is best effort: a client with a full send buffer is
// skipped, never waited on.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *UploadMessage
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *UploadMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToAll(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	log.Info().
		Str("remoteAddr", client.remoteAddr).
		Int("totalClients", len(h.clients)).
		Msg("[WS] Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	log.Info().
		Str("remoteAddr", client.remoteAddr).
		Int("totalClients", len(h.clients)).
		Msg("[WS] Client unregistered")
}

func (h *Hub) broadcastToAll(msg *UploadMessage) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- msg:
		default:
			log.Warn().
				Str("remoteAddr", client.remoteAddr).
				Msg("[WS] Client send buffer full, dropping message")
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyUpload implements gallery.UploadNotifier. Non-blocking: when the
// broadcast queue is full the notification is dropped rather than delaying
// the upload response.
func (h *Hub) NotifyUpload(result *gallery.UploadResult) {
	msg := &UploadMessage{
		Type:   MessageTypeUpload,
		Upload: result,
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Warn().Str("id", result.ID).Msg("[WS] Broadcast queue full, dropping upload notification")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

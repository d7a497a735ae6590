package events

import (
	"github.com/fasthttp/websocket"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		// TODO: check against the configured allowed origins
		return true
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// HandleFastHTTP upgrades the connection and runs the client pumps until
// disconnect.
func (h *Handler) HandleFastHTTP(ctx *fasthttp.RequestCtx) {
	err := upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
		client := NewClient(h.hub, conn)
		h.hub.Register(client)

		client.send <- &OutgoingMessage{Type: MessageTypeConnected}

		go client.WritePump()
		client.ReadPump() // Blocks until disconnect
	})
	if err != nil {
		log.Error().Err(err).Msg("[WS] Failed to upgrade connection")
	}
}

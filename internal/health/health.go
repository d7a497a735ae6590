package health

import (
	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// ClientCounter reports how many websocket clients are currently connected.
type ClientCounter interface {
	ClientCount() int
}

type HealthEndpoints struct {
	version string
	clients ClientCounter
}

func NewEndpoints(version string, clients ClientCounter) *HealthEndpoints {
	return &HealthEndpoints{
		version: version,
		clients: clients,
	}
}

type HealthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	ConnectedClients int    `json:"connectedClients"`
}

func (h *HealthEndpoints) Health(ctx *fasthttp.RequestCtx) {
	response := HealthResponse{
		Status:           "healthy",
		Version:          h.version,
		ConnectedClients: h.clients.ClientCount(),
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)

	responseJSON, err := json.Marshal(response)
	if err != nil {
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetBody(responseJSON)
}

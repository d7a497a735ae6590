package health

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

type stubClientCounter struct {
	count int
}

func (s *stubClientCounter) ClientCount() int { return s.count }

func TestHealth_ShouldReportStatusVersionAndConnectedClients(t *testing.T) {
	// given
	endpoints := NewEndpoints("1.2.3", &stubClientCounter{count: 4})
	ctx := &fasthttp.RequestCtx{}

	// when
	endpoints.Health(ctx)

	// then
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var response HealthResponse
	assert.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "1.2.3", response.Version)
	assert.Equal(t, 4, response.ConnectedClients)
}

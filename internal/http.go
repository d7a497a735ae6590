package internal

import (
	"github.com/valyala/fasthttp"

	"github.com/shutterbox/shutterbox_server/internal/events"
	"github.com/shutterbox/shutterbox_server/internal/gallery"
	"github.com/shutterbox/shutterbox_server/internal/health"
	"github.com/shutterbox/shutterbox_server/internal/middleware"
)

func NewRequestHandler(config *Config, galleryEndpoints *gallery.Endpoints, healthEndpoints *health.HealthEndpoints, wsHandler *events.Handler) fasthttp.RequestHandler {
	corsMiddleware := middleware.NewCORSMiddleware(config.AllowedOrigins)

	handler := func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())

		switch path {
		case "/upload":
			if string(ctx.Method()) == "POST" {
				galleryEndpoints.Upload(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}

		case "/images":
			if string(ctx.Method()) == "GET" {
				galleryEndpoints.ListImages(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}

		case "/health":
			healthEndpoints.Health(ctx)

		case "/ws":
			wsHandler.HandleFastHTTP(ctx)

		default:
			ctx.Error("Not Found", fasthttp.StatusNotFound)
		}
	}

	return corsMiddleware.Handle(handler)
}

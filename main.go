package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/shutterbox/shutterbox_server/internal"
	"github.com/shutterbox/shutterbox_server/internal/blobstore"
	"github.com/shutterbox/shutterbox_server/internal/events"
	"github.com/shutterbox/shutterbox_server/internal/gallery"
	"github.com/shutterbox/shutterbox_server/internal/health"
	"github.com/shutterbox/shutterbox_server/internal/mapping"
	"github.com/shutterbox/shutterbox_server/internal/rawdecode"
)

const version = "1.0.0"

func main() {
	config, err := internal.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
		return
	}

	db, err := internal.NewDB(config.MappingDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing mapping database")
		return
	}

	backend, err := blobstore.New(&blobstore.Config{
		Type:        blobstore.BackendType(config.Storage.Type),
		Endpoint:    config.Storage.Endpoint,
		Bucket:      config.Storage.Bucket,
		Region:      config.Storage.Region,
		AccessKey:   config.Storage.AccessKey,
		SecretKey:   config.Storage.SecretKey,
		UseSSL:      config.Storage.UseSSL,
		ExternalURL: config.Storage.ExternalURL,
		LocalPath:   config.Storage.LocalPath,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing blob store backend")
		return
	}

	headCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := backend.Head(headCtx); err != nil {
		log.Fatal().Err(err).Str("bucket", config.Storage.Bucket).Msg("Blob store unreachable")
		return
	}
	log.Info().Str("bucket", config.Storage.Bucket).Msg("Blob store connection verified")

	hub := events.NewHub()
	go hub.Run()

	converter := gallery.NewConverter(gallery.ConverterConfig{
		DisplayBound:            config.Upload.DisplayBound,
		ThumbnailBound:          config.Upload.ThumbnailBound,
		DisplayQuality:          config.Upload.DisplayQuality,
		ThumbnailQualityRaw:     config.Upload.ThumbnailQualityRaw,
		ThumbnailQualityRegular: config.Upload.ThumbnailQualityRegular,
	})

	mappingRepo := mapping.NewRepository(db)
	service := gallery.NewService(backend, mappingRepo, rawdecode.NewDCRaw(), converter, hub, config.Upload.MaxRawSizeBytes)

	galleryEndpoints := gallery.NewEndpoints(service, config.Upload.MaxRawSizeBytes)
	healthEndpoints := health.NewEndpoints(version, hub)
	wsHandler := events.NewHandler(hub)

	requestHandler := internal.NewRequestHandler(config, galleryEndpoints, healthEndpoints, wsHandler)

	log.Info().Str("addr", config.ListenAddr).Msg("Starting server")
	if err := fasthttp.ListenAndServe(config.ListenAddr, requestHandler); err != nil {
		log.Fatal().Err(err).Msg("Error starting server")
	}
}

package gallery

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

type Endpoints struct {
	service       *Service
	maxUploadSize int64
}

func NewEndpoints(service *Service, maxUploadSize int64) *Endpoints {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxRawSize
	}
	return &Endpoints{
		service:       service,
		maxUploadSize: maxUploadSize,
	}
}

func (e *Endpoints) Upload(ctx *fasthttp.RequestCtx) {
	contentType := string(ctx.Request.Header.ContentType())
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		writeError(ctx, fasthttp.StatusBadRequest, "Content-Type must be multipart/form-data")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "No file uploaded")
		return
	}

	fileHeader := files[0]
	if fileHeader.Size > e.maxUploadSize {
		writeError(ctx, fasthttp.StatusBadRequest, "File too large")
		return
	}

	fileContentType := fileHeader.Header.Get("Content-Type")
	if fileContentType == "" || fileContentType == "application/octet-stream" {
		fileContentType = detectContentType(fileHeader.Filename)
	}
	if !strings.HasPrefix(fileContentType, "image/") {
		writeError(ctx, fasthttp.StatusBadRequest, "File must be an image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	req := &UploadRequest{
		Filename:    fileHeader.Filename,
		ContentType: fileContentType,
		SizeBytes:   fileHeader.Size,
	}

	result, err := e.service.Upload(ctx, req, file)
	if err != nil {
		log.Error().Err(err).Str("filename", req.Filename).Msg("Upload failed")
		if errors.Is(err, ErrValidation) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		} else {
			writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (e *Endpoints) ListImages(ctx *fasthttp.RequestCtx) {
	limit := defaultListLimit
	if raw := string(ctx.QueryArgs().Peek("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	images, err := e.service.List(ctx, limit)
	if err != nil {
		log.Error().Err(err).Msg("Listing images failed")
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to list images")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, &ListResponse{
		Images: images,
		Total:  len(images),
		Limit:  limit,
	})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, &errorResponse{Error: message})
}

// detectContentType maps an extension to a media type when the client sent
// none. RAW extensions map to vendor x- types so they pass the image/ check.
func detectContentType(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "":
		return "application/octet-stream"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	}
	if rawExtensions["."+ext] {
		return "image/x-" + ext
	}
	return "application/octet-stream"
}

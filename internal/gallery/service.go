package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shutterbox/shutterbox_server/internal/blobstore"
	"github.com/shutterbox/shutterbox_server/internal/mapping"
	"github.com/shutterbox/shutterbox_server/internal/rawdecode"
)

type MappingStore interface {
	Record(e *mapping.Entry) error
	Lookup(processedName string) (*mapping.Entry, error)
}

// UploadNotifier receives every successfully stored upload. Implementations
// must not block; a slow consumer must never delay the upload response.
type UploadNotifier interface {
	NotifyUpload(result *UploadResult)
}

const defaultMaxRawSize = 500 * 1024 * 1024

// Service orchestrates the upload and list pipelines: classification,
// conversion, key naming, multi-object writes, and lineage reconstruction.
type Service struct {
	backend    blobstore.Backend
	mappings   MappingStore
	decoder    rawdecode.Decoder
	converter  *Converter
	notifier   UploadNotifier
	maxRawSize int64
}

func NewService(backend blobstore.Backend, mappings MappingStore, decoder rawdecode.Decoder, converter *Converter, notifier UploadNotifier, maxRawSize int64) *Service {
	if maxRawSize <= 0 {
		maxRawSize = defaultMaxRawSize
	}
	return &Service{
		backend:    backend,
		mappings:   mappings,
		decoder:    decoder,
		converter:  converter,
		notifier:   notifier,
		maxRawSize: maxRawSize,
	}
}

// Upload stores one inbound image. RAW files yield three objects (raw
// original, processed display JPEG, thumbnail); regular files yield two
// (original, thumbnail). Writes are sequential and not transactional: a
// failure after the first put leaves earlier objects in the store.
func (s *Service) Upload(ctx context.Context, req *UploadRequest, data io.Reader) (*UploadResult, error) {
	now := time.Now()
	token := newUploadToken()

	var (
		result *UploadResult
		err    error
	)
	if Classify(req.Filename) == KindRaw {
		result, err = s.uploadRaw(ctx, req, data, now, token)
	} else {
		result, err = s.uploadRegular(ctx, req, data, now, token)
	}
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyUpload(result)
	}
	return result, nil
}

func (s *Service) uploadRaw(ctx context.Context, req *UploadRequest, data io.Reader, now time.Time, token string) (*UploadResult, error) {
	// The decoder needs file-like random access, so spool to a scratch
	// file. Removed on every exit path.
	scratch, err := os.CreateTemp("", "upload-*"+strings.ToLower(filepath.Ext(req.Filename)))
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}
	scratchPath := scratch.Name()
	defer os.Remove(scratchPath)

	size, err := io.Copy(scratch, data)
	if cerr := scratch.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("spool raw upload: %w", err)
	}
	if size > s.maxRawSize {
		return nil, fmt.Errorf("%w: raw file is %d bytes (limit %d)", ErrValidation, size, s.maxRawSize)
	}

	handle, err := s.decoder.Open(ctx, scratchPath)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable raw file %q: %v", ErrValidation, req.Filename, err)
	}
	defer handle.Close()

	img, err := handle.Decode(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %q: %v", ErrConversion, req.Filename, err)
	}

	// Convert everything before the first put so a conversion failure
	// never publishes partial artifacts.
	display, err := s.converter.DisplayJPEG(img)
	if err != nil {
		return nil, err
	}
	thumb, err := s.converter.Thumbnail(img, KindRaw)
	if err != nil {
		return nil, err
	}

	original, err := os.ReadFile(scratchPath)
	if err != nil {
		return nil, fmt.Errorf("reread scratch file: %w", err)
	}

	rawKey := buildObjectKey(NamespaceRaw, filepath.Ext(req.Filename), now, token)
	processedKey := buildObjectKey(NamespaceProcessed, "jpg", now, token)
	thumbKey := buildObjectKey(NamespaceThumbnails, "jpg", now, token)

	if err := s.put(ctx, rawKey, original, rawContentType(req.ContentType)); err != nil {
		return nil, err
	}
	if err := s.put(ctx, processedKey, display, "image/jpeg"); err != nil {
		return nil, err
	}
	if err := s.put(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
		return nil, err
	}

	rawURL := s.backend.ObjectURL(rawKey)
	if err := s.record(processedKey, req.Filename, rawURL, KindRaw, now); err != nil {
		return nil, err
	}

	meta := handle.Metadata()
	log.Info().
		Str("rawKey", rawKey).
		Str("processedKey", processedKey).
		Int("width", meta.Width).
		Int("height", meta.Height).
		Msg("RAW upload stored")

	return &UploadResult{
		Filename:   req.Filename,
		SizeBytes:  size,
		IsRaw:      true,
		UploadedAt: now.Unix(),
		ID:         token,
		URLs: map[string]string{
			RoleRaw:       rawURL,
			RoleDisplay:   s.backend.ObjectURL(processedKey),
			RoleThumbnail: s.backend.ObjectURL(thumbKey),
		},
		Metadata:   rawMetadataFrom(meta),
		Processing: s.converter.ProcessingInfo(KindRaw),
	}, nil
}

func (s *Service) uploadRegular(ctx context.Context, req *UploadRequest, data io.Reader, now time.Time, token string) (*UploadResult, error) {
	original, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(original)) > s.maxRawSize {
		return nil, fmt.Errorf("%w: file is %d bytes (limit %d)", ErrValidation, len(original), s.maxRawSize)
	}

	thumb, err := s.converter.ThumbnailFromBytes(original, KindRegular)
	if err != nil {
		return nil, err
	}

	uploadKey := buildObjectKey(NamespaceUploads, filepath.Ext(req.Filename), now, token)
	thumbKey := buildObjectKey(NamespaceThumbnails, "jpg", now, token)

	if err := s.put(ctx, uploadKey, original, req.ContentType); err != nil {
		return nil, err
	}
	if err := s.put(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
		return nil, err
	}

	uploadURL := s.backend.ObjectURL(uploadKey)
	if err := s.record(uploadKey, req.Filename, uploadURL, KindRegular, now); err != nil {
		return nil, err
	}

	log.Info().Str("key", uploadKey).Int("size", len(original)).Msg("Upload stored")

	return &UploadResult{
		Filename:   req.Filename,
		SizeBytes:  int64(len(original)),
		IsRaw:      false,
		UploadedAt: now.Unix(),
		ID:         token,
		URLs: map[string]string{
			RoleOriginal:  uploadURL,
			RoleThumbnail: s.backend.ObjectURL(thumbKey),
		},
		Processing: s.converter.ProcessingInfo(KindRegular),
	}, nil
}

func (s *Service) put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := s.backend.Put(ctx, key, data, contentType); err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrStore, key, err)
	}
	return nil
}

func (s *Service) record(key, originalName, sourceURL string, kind Kind, now time.Time) error {
	entry := &mapping.Entry{
		ProcessedName: path.Base(key),
		OriginalName:  originalName,
		SourceURL:     sourceURL,
		Kind:          string(kind),
		RecordedAt:    now.Unix(),
	}
	if err := s.mappings.Record(entry); err != nil {
		return fmt.Errorf("%w: record mapping for %s: %v", ErrStore, entry.ProcessedName, err)
	}
	return nil
}

// listNamespaces are scanned on every list call. raw/ is scanned but its
// entries are dropped from the merged output: their processed/ sibling
// represents them in the gallery.
var listNamespaces = []string{NamespaceUploads, NamespaceProcessed, NamespaceRaw}

// List scans the storage namespaces concurrently, derives display and
// thumbnail URLs per namespace, reconstructs RAW lineage, and returns up to
// limit entries sorted newest first. A failed namespace scan is logged and
// skipped; an unreachable store yields an empty list, not an error.
func (s *Service) List(ctx context.Context, limit int) ([]ImageInfo, error) {
	var (
		mu  sync.Mutex
		all []ImageInfo
		wg  sync.WaitGroup
	)

	for _, ns := range listNamespaces {
		wg.Add(1)
		go func(ns string) {
			defer wg.Done()

			objects, err := s.backend.List(ctx, ns+"/", limit)
			if err != nil {
				log.Warn().Err(err).Str("namespace", ns).Msg("Namespace scan failed, skipping")
				return
			}

			infos := make([]ImageInfo, 0, len(objects))
			for _, obj := range objects {
				if !IsImageKey(obj.Key) {
					continue
				}
				infos = append(infos, s.imageInfo(obj, ns))
			}

			mu.Lock()
			all = append(all, infos...)
			mu.Unlock()
		}(ns)
	}
	wg.Wait()

	images := make([]ImageInfo, 0, len(all))
	for _, info := range all {
		if info.Folder == NamespaceRaw {
			continue
		}
		images = append(images, info)
	}

	// Fixed-width zero-padded timestamps make lexicographic order match
	// chronological order.
	sort.Slice(images, func(i, j int) bool { return images[i].Timestamp > images[j].Timestamp })

	if len(images) > limit {
		images = images[:limit]
	}
	return images, nil
}

func (s *Service) imageInfo(obj blobstore.ObjectInfo, ns string) ImageInfo {
	base := path.Base(obj.Key)

	info := ImageInfo{
		Key:          obj.Key,
		Filename:     base,
		Folder:       ns,
		Timestamp:    timestampFromKey(obj.Key),
		SizeBytes:    obj.Size,
		LastModified: obj.LastModified.Unix(),
		// processed/ objects are JPEG-encoded but flagged RAW: the flag
		// means "derived from a RAW original" for that namespace.
		IsRaw:        ns == NamespaceRaw || ns == NamespaceProcessed || Classify(base) == KindRaw,
		ThumbnailURL: s.backend.ObjectURL(NamespaceThumbnails + "/" + stemOf(obj.Key) + ".jpg"),
	}

	switch ns {
	case NamespaceUploads:
		info.URL = s.backend.ObjectURL(obj.Key)
	case NamespaceRaw:
		info.URL = s.backend.ObjectURL(NamespaceProcessed + "/" + stemOf(obj.Key) + ".jpg")
		info.OriginalURL = s.backend.ObjectURL(obj.Key)
	case NamespaceProcessed:
		info.URL = s.backend.ObjectURL(obj.Key)
		info.RawURL = s.rawOriginalURL(obj.Key, base)
	}
	return info
}

// rawOriginalURL resolves the RAW original behind a processed object: the
// mapping store is authoritative, the naming convention is the fallback.
func (s *Service) rawOriginalURL(key, base string) string {
	entry, err := s.mappings.Lookup(base)
	if err == nil {
		return entry.SourceURL
	}
	if !errors.Is(err, mapping.ErrNotFound) {
		log.Warn().Err(err).Str("key", key).Msg("Mapping lookup failed")
	}
	if sibling := rawSiblingKey(key); sibling != "" {
		return s.backend.ObjectURL(sibling)
	}
	return ""
}

func rawContentType(declared string) string {
	if declared == "" {
		return "application/octet-stream"
	}
	return declared
}

func rawMetadataFrom(m *rawdecode.Metadata) *RawMetadata {
	if m == nil {
		return nil
	}
	return &RawMetadata{
		Width:         m.Width,
		Height:        m.Height,
		Colors:        m.Colors,
		Camera:        m.Camera,
		FilterPattern: m.FilterPattern,
		BlackLevel:    m.BlackLevel,
		WhiteLevel:    m.WhiteLevel,
		CameraWB:      m.CameraWB,
		DaylightWB:    m.DaylightWB,
	}
}

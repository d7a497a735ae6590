package gallery

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	NamespaceUploads    = "uploads"
	NamespaceProcessed  = "processed"
	NamespaceRaw        = "raw"
	NamespaceThumbnails = "thumbnails"
)

// keyTimeFormat is fixed-width and zero-padded, so lexicographic order on
// the synthetic names matches chronological order.
const keyTimeFormat = "20060102_150405"

func newUploadToken() string {
	return uuid.New().String()[:8]
}

// buildObjectKey produces "{namespace}/{timestamp}_{token}.{ext}". The
// timestamp plus random token makes keys practically unique; keys are never
// reused or overwritten.
func buildObjectKey(namespace, ext string, now time.Time, token string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%s_%s.%s", namespace, now.Format(keyTimeFormat), token, ext)
}

// timestampFromKey recovers the timestamp component of a synthetic name:
// the first two underscore-delimited segments of the basename.
func timestampFromKey(key string) string {
	base := path.Base(key)
	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return strings.TrimSuffix(base, path.Ext(base))
	}
	second := parts[1]
	if dot := strings.IndexByte(second, '.'); dot >= 0 {
		second = second[:dot]
	}
	return parts[0] + "_" + second
}

// stemOf returns the basename without its extension.
func stemOf(key string) string {
	base := path.Base(key)
	return strings.TrimSuffix(base, path.Ext(base))
}

// rawSiblingKey rebuilds the raw/ key for a processed object from the first
// three underscore-delimited segments of its name. Best effort: the original
// RAW extension is not recoverable from the name, so the rebuilt key only
// resolves while the naming convention is unchanged.
func rawSiblingKey(key string) string {
	parts := strings.Split(path.Base(key), "_")
	if len(parts) < 3 {
		return ""
	}
	return NamespaceRaw + "/" + strings.Join(parts[:3], "_")
}

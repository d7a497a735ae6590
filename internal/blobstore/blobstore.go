package blobstore

import (
	"context"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Backend is the object-store surface the gallery needs: atomic single-object
// writes, prefix listing, a startup reachability check, and public URL
// derivation. Multi-object sequences built on top of Put are not
// transactional.
type Backend interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	List(ctx context.Context, prefix string, maxKeys int) ([]ObjectInfo, error)
	Head(ctx context.Context) error
	ObjectURL(key string) string
}

type BackendType string

const (
	BackendTypeLocal BackendType = "local"
	BackendTypeS3    BackendType = "s3"
)

type Config struct {
	Type        BackendType
	Endpoint    string
	Bucket      string
	AccessKey   string
	SecretKey   string
	Region      string
	UseSSL      bool
	ExternalURL string
	LocalPath   string
}

func New(config *Config) (Backend, error) {
	switch config.Type {
	case BackendTypeS3:
		return NewS3Backend(config)
	default:
		return NewLocalBackend(config)
	}
}

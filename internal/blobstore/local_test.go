package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestBackend(t *testing.T) *LocalBackend {
	t.Helper()
	backend, err := NewLocalBackend(&Config{LocalPath: t.TempDir(), ExternalURL: "http://localhost:8080/files"})
	assert.NoError(t, err)
	return backend
}

func TestLocalBackend_ShouldRoundTripPutAndList(t *testing.T) {
	// given
	backend := newTestBackend(t)
	ctx := context.Background()

	assert.NoError(t, backend.Put(ctx, "uploads/20240101_000000_aaaa1111.jpg", []byte("jpeg bytes"), "image/jpeg"))
	assert.NoError(t, backend.Put(ctx, "thumbnails/20240101_000000_aaaa1111.jpg", []byte("thumb bytes"), "image/jpeg"))

	// when
	objects, err := backend.List(ctx, "uploads/", 100)

	// then
	assert.NoError(t, err)
	assert.Len(t, objects, 1)
	assert.Equal(t, "uploads/20240101_000000_aaaa1111.jpg", objects[0].Key)
	assert.Equal(t, int64(len("jpeg bytes")), objects[0].Size)
}

func TestLocalBackend_ShouldLimitListResults(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	assert.NoError(t, backend.Put(ctx, "uploads/a.jpg", []byte("a"), "image/jpeg"))
	assert.NoError(t, backend.Put(ctx, "uploads/b.jpg", []byte("b"), "image/jpeg"))
	assert.NoError(t, backend.Put(ctx, "uploads/c.jpg", []byte("c"), "image/jpeg"))

	objects, err := backend.List(ctx, "uploads/", 2)

	assert.NoError(t, err)
	assert.Len(t, objects, 2)
}

func TestLocalBackend_ShouldReturnEmptyListForUnknownPrefix(t *testing.T) {
	backend := newTestBackend(t)

	objects, err := backend.List(context.Background(), "processed/", 100)

	assert.NoError(t, err)
	assert.Empty(t, objects)
}

func TestLocalBackend_ShouldDeriveURLFromExternalBase(t *testing.T) {
	backend := newTestBackend(t)

	url := backend.ObjectURL("uploads/20240101_000000_aaaa1111.jpg")

	assert.Equal(t, "http://localhost:8080/files/uploads/20240101_000000_aaaa1111.jpg", url)
}

func TestLocalBackend_HeadShouldSucceedOnExistingDirectory(t *testing.T) {
	backend := newTestBackend(t)

	assert.NoError(t, backend.Head(context.Background()))
}

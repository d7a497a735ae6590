// Package rawdecode turns camera RAW files into decoded pixel buffers plus
// shot metadata. Decoding is delegated to dcraw; services depend only on the
// Decoder interface so tests can substitute a stub.
package rawdecode

import (
	"context"
	"image"
)

type Metadata struct {
	Width         int
	Height        int
	Colors        int
	Camera        string
	FilterPattern string
	BlackLevel    int
	WhiteLevel    int
	CameraWB      []float64
	DaylightWB    []float64
}

// Decoder opens a RAW file for decoding. Open validates that the file is
// readable as RAW; a failed Open means the upload should be rejected.
// Decoders need a file path, not a byte stream: RAW containers require
// random access.
type Decoder interface {
	Open(ctx context.Context, path string) (Handle, error)
}

type Handle interface {
	// Metadata returns what is known about the file so far. Black and
	// white levels are only populated after Decode has run.
	Metadata() *Metadata
	Decode(ctx context.Context) (image.Image, error)
	Close() error
}

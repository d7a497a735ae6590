package gallery

import "errors"

var (
	// ErrValidation covers rejected input: wrong content type, oversize
	// uploads, RAW files the decoder cannot open.
	ErrValidation = errors.New("validation failed")

	// ErrConversion covers decode or encode failures while producing the
	// display copy or thumbnail.
	ErrConversion = errors.New("conversion failed")

	// ErrStore covers blob store failures. Objects already written before
	// the failing call are not rolled back.
	ErrStore = errors.New("store operation failed")
)

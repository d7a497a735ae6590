package gallery

import (
	"path/filepath"
	"strings"
)

type Kind string

const (
	KindRegular Kind = "regular"
	KindRaw     Kind = "raw"
)

// rawExtensions is the camera RAW allow-list. It deliberately includes
// container formats (TIFF, EXR, DPX, TGA) that cameras and film scanners
// emit alongside true sensor dumps, so matching here means "needs the RAW
// pipeline", not "is a Bayer mosaic".
var rawExtensions = map[string]bool{
	".cr2": true, ".cr3": true, // Canon
	".nef": true, ".nrw": true, // Nikon
	".arw": true, ".sr2": true, // Sony
	".raf": true, // Fujifilm
	".rw2": true, // Panasonic
	".orf": true, // Olympus
	".pef": true, // Pentax
	".dng": true, // Adobe
	".raw": true, // Generic
	".rwz": true, ".3fr": true, ".fff": true, // Hasselblad
	".srw": true, // Samsung
	".mrw": true, ".mdc": true, // Minolta
	".mef": true, // Mamiya
	".mos": true, // Leaf
	".bay": true, // Casio
	".dcr": true, ".kdc": true, // Kodak
	".erf": true, // Epson
	".x3f": true, // Sigma
	".r3d": true, // Red Digital Cinema
	".cine": true, // Phantom
	".dpx": true, // Digital Picture Exchange
	".exr": true, // OpenEXR
	".hdr": true, // Radiance HDR
	".tga": true, // Targa
	".tif": true, ".tiff": true, // TIFF
}

var displayExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// Classify decides regular vs RAW from the lower-cased file extension only.
// Unknown or missing extensions are regular; there is no content sniffing.
func Classify(filename string) Kind {
	if rawExtensions[strings.ToLower(filepath.Ext(filename))] {
		return KindRaw
	}
	return KindRegular
}

// IsImageKey reports whether an object key carries a recognized image or RAW
// extension. Used to filter listing results down to displayable entries.
func IsImageKey(key string) bool {
	ext := strings.ToLower(filepath.Ext(key))
	return displayExtensions[ext] || rawExtensions[ext]
}

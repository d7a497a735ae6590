package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectContentType_ShouldMapCommonImageExtensions(t *testing.T) {
	assert.Equal(t, "image/jpeg", detectContentType("photo.jpg"))
	assert.Equal(t, "image/jpeg", detectContentType("photo.JPEG"))
	assert.Equal(t, "image/png", detectContentType("photo.png"))
	assert.Equal(t, "image/webp", detectContentType("photo.webp"))
	assert.Equal(t, "image/tiff", detectContentType("scan.tif"))
}

func TestDetectContentType_ShouldMapRawExtensionsToVendorTypes(t *testing.T) {
	// RAW uploads usually arrive as octet-stream; the derived vendor type
	// lets them pass the image/ prefix check.
	assert.Equal(t, "image/x-cr2", detectContentType("shot.cr2"))
	assert.Equal(t, "image/x-nef", detectContentType("shot.NEF"))
	assert.Equal(t, "image/x-dng", detectContentType("shot.dng"))
}

func TestDetectContentType_ShouldFallBackToOctetStream(t *testing.T) {
	assert.Equal(t, "application/octet-stream", detectContentType("archive.zip"))
	assert.Equal(t, "application/octet-stream", detectContentType("noextension"))
}

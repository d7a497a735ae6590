package gallery

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func makeTestImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func makeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, makeTestImage(width, height)))
	return buf.Bytes()
}

func TestDisplayJPEG_ShouldBoundDimensionsPreservingAspectRatio(t *testing.T) {
	// given
	converter := NewConverter(ConverterConfig{DisplayBound: 40})

	// when
	data, err := converter.DisplayJPEG(makeTestImage(100, 50))

	// then
	assert.NoError(t, err)
	decoded, err := imaging.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 40, decoded.Bounds().Dx())
	assert.Equal(t, 20, decoded.Bounds().Dy())
}

func TestDisplayJPEG_ShouldNotUpscaleSmallImages(t *testing.T) {
	converter := NewConverter(ConverterConfig{DisplayBound: 2048})

	data, err := converter.DisplayJPEG(makeTestImage(10, 10))

	assert.NoError(t, err)
	decoded, err := imaging.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 10, decoded.Bounds().Dx())
	assert.Equal(t, 10, decoded.Bounds().Dy())
}

func TestThumbnail_ShouldFitWithinThumbnailBound(t *testing.T) {
	converter := NewConverter(ConverterConfig{ThumbnailBound: 30})

	data, err := converter.Thumbnail(makeTestImage(90, 60), KindRaw)

	assert.NoError(t, err)
	decoded, err := imaging.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.LessOrEqual(t, decoded.Bounds().Dx(), 30)
	assert.LessOrEqual(t, decoded.Bounds().Dy(), 30)
}

func TestThumbnailFromBytes_ShouldFlattenTransparency(t *testing.T) {
	// given: a PNG with a fully transparent pixel region
	img := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))

	converter := NewConverter(ConverterConfig{})

	// when
	data, err := converter.ThumbnailFromBytes(buf.Bytes(), KindRegular)

	// then
	assert.NoError(t, err)
	assert.NotEmpty(t, data)
}

// Smallest valid lossless WebP: a single transparent pixel.
var webpFixture = []byte{
	0x52, 0x49, 0x46, 0x46, 0x1a, 0x00, 0x00, 0x00,
	0x57, 0x45, 0x42, 0x50, 0x56, 0x50, 0x38, 0x4c,
	0x0d, 0x00, 0x00, 0x00, 0x2f, 0x00, 0x00, 0x00,
	0x10, 0x07, 0x10, 0x11, 0x11, 0x88, 0x88, 0xfe,
	0x07, 0x00,
}

func TestThumbnailFromBytes_ShouldDecodeWebp(t *testing.T) {
	// given
	converter := NewConverter(ConverterConfig{})

	// when
	data, err := converter.ThumbnailFromBytes(webpFixture, KindRegular)

	// then
	assert.NoError(t, err)
	decoded, err := imaging.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 1, decoded.Bounds().Dx())
	assert.Equal(t, 1, decoded.Bounds().Dy())
}

func TestThumbnailFromBytes_ShouldFailOnUndecodableInput(t *testing.T) {
	converter := NewConverter(ConverterConfig{})

	_, err := converter.ThumbnailFromBytes([]byte("not an image"), KindRegular)

	assert.ErrorIs(t, err, ErrConversion)
}

func TestProcessingInfo_ShouldReflectConversionForRaw(t *testing.T) {
	converter := NewConverter(ConverterConfig{})

	info := converter.ProcessingInfo(KindRaw)

	assert.True(t, info.Converted)
	assert.Equal(t, defaultDisplayBound, info.DisplayMaxDimension)
	assert.Equal(t, defaultThumbQualityRaw, info.ThumbnailQuality)
}

func TestProcessingInfo_ShouldReportThumbnailOnlyForRegular(t *testing.T) {
	converter := NewConverter(ConverterConfig{})

	info := converter.ProcessingInfo(KindRegular)

	assert.False(t, info.Converted)
	assert.Zero(t, info.DisplayMaxDimension)
	assert.Equal(t, defaultThumbQualityReg, info.ThumbnailQuality)
}

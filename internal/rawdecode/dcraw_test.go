package rawdecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleIdentifyOutput = `
Filename: /tmp/upload-1234.cr2
Timestamp: Sat Feb 10 14:21:30 2024
Camera: Canon EOS 5D Mark IV
ISO speed: 400
Shutter: 1/125.0 sec
Aperture: f/4.0
Focal length: 50.0 mm
Embedded ICC profile: no
Number of raw images: 1
Thumb size:  5472 x 3648
Full size:   5568 x 3708
Image size:  5496 x 3670
Output size: 5496 x 3670
Raw colors: 3
Filter pattern: RG/GB
Daylight multipliers: 2.404480 0.929701 1.166192
Camera multipliers: 2214.000000 1024.000000 1541.000000 1024.000000
`

func TestParseIdentify_ShouldExtractDimensionsAndCamera(t *testing.T) {
	// when
	meta := parseIdentify(sampleIdentifyOutput)

	// then
	assert.Equal(t, 5496, meta.Width)
	assert.Equal(t, 3670, meta.Height)
	assert.Equal(t, 3, meta.Colors)
	assert.Equal(t, "Canon EOS 5D Mark IV", meta.Camera)
	assert.Equal(t, "RG/GB", meta.FilterPattern)
}

func TestParseIdentify_ShouldExtractWhiteBalanceMultipliers(t *testing.T) {
	meta := parseIdentify(sampleIdentifyOutput)

	assert.Equal(t, []float64{2.404480, 0.929701, 1.166192}, meta.DaylightWB)
	assert.Equal(t, []float64{2214, 1024, 1541, 1024}, meta.CameraWB)
}

func TestParseIdentify_ShouldToleratePartialOutput(t *testing.T) {
	meta := parseIdentify("Camera: NIKON D750\n")

	assert.Equal(t, "NIKON D750", meta.Camera)
	assert.Zero(t, meta.Width)
	assert.Nil(t, meta.CameraWB)
}

func TestParseScaling_ShouldExtractBlackAndWhiteLevels(t *testing.T) {
	// given
	stderr := `Loading Canon EOS 5D Mark IV CR2 image from /tmp/upload-1234.cr2 ...
Scaling with darkness 2047, saturation 13583, and
multipliers 2.162281 1.000000 1.520979 1.000000
AHD interpolation...
Converting to sRGB colorspace...
`
	meta := &Metadata{}

	// when
	parseScaling(stderr, meta)

	// then
	assert.Equal(t, 2047, meta.BlackLevel)
	assert.Equal(t, 13583, meta.WhiteLevel)
}

func TestParseScaling_ShouldLeaveLevelsUntouchedWithoutScalingLine(t *testing.T) {
	meta := &Metadata{}

	parseScaling("AHD interpolation...\n", meta)

	assert.Zero(t, meta.BlackLevel)
	assert.Zero(t, meta.WhiteLevel)
}

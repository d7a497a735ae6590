package gallery

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	defaultDisplayBound     = 2048
	defaultThumbnailBound   = 300
	defaultDisplayQuality   = 85
	defaultThumbQualityRaw  = 70
	defaultThumbQualityReg  = 85
)

type ConverterConfig struct {
	DisplayBound            int
	ThumbnailBound          int
	DisplayQuality          int
	ThumbnailQualityRaw     int
	ThumbnailQualityRegular int
}

// Converter turns decoded pixels into the web-displayable JPEG artifacts.
type Converter struct {
	cfg ConverterConfig
}

func NewConverter(cfg ConverterConfig) *Converter {
	if cfg.DisplayBound <= 0 {
		cfg.DisplayBound = defaultDisplayBound
	}
	if cfg.ThumbnailBound <= 0 {
		cfg.ThumbnailBound = defaultThumbnailBound
	}
	if cfg.DisplayQuality <= 0 {
		cfg.DisplayQuality = defaultDisplayQuality
	}
	if cfg.ThumbnailQualityRaw <= 0 {
		cfg.ThumbnailQualityRaw = defaultThumbQualityRaw
	}
	if cfg.ThumbnailQualityRegular <= 0 {
		cfg.ThumbnailQualityRegular = defaultThumbQualityReg
	}
	return &Converter{cfg: cfg}
}

// DisplayJPEG shrinks the image so neither dimension exceeds the display
// bound, preserving aspect ratio, and encodes it as JPEG.
func (c *Converter) DisplayJPEG(img image.Image) ([]byte, error) {
	resized := imaging.Fit(img, c.cfg.DisplayBound, c.cfg.DisplayBound, imaging.Lanczos)
	return c.encodeJPEG(resized, c.cfg.DisplayQuality)
}

// Thumbnail fits the image within the thumbnail bound. RAW-sourced
// thumbnails encode at a lower quality than regular ones.
func (c *Converter) Thumbnail(img image.Image, kind Kind) ([]byte, error) {
	thumb := imaging.Fit(img, c.cfg.ThumbnailBound, c.cfg.ThumbnailBound, imaging.Lanczos)
	return c.encodeJPEG(thumb, c.thumbnailQuality(kind))
}

// ThumbnailFromBytes decodes an uploaded regular image and produces its
// thumbnail. Palette and alpha modes are flattened first since JPEG has no
// alpha channel.
func (c *Converter) ThumbnailFromBytes(data []byte, kind Kind) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", ErrConversion, err)
	}
	return c.Thumbnail(flatten(img), kind)
}

func (c *Converter) ProcessingInfo(kind Kind) *ProcessingInfo {
	info := &ProcessingInfo{
		ThumbnailMaxDimension: c.cfg.ThumbnailBound,
		ThumbnailQuality:      c.thumbnailQuality(kind),
	}
	if kind == KindRaw {
		info.Converted = true
		info.DisplayMaxDimension = c.cfg.DisplayBound
		info.DisplayQuality = c.cfg.DisplayQuality
	}
	return info
}

func (c *Converter) thumbnailQuality(kind Kind) int {
	if kind == KindRaw {
		return c.cfg.ThumbnailQualityRaw
	}
	return c.cfg.ThumbnailQualityRegular
}

func (c *Converter) encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("%w: encode jpeg: %v", ErrConversion, err)
	}
	return buf.Bytes(), nil
}

// flatten composites the image onto a white background, normalizing
// transparency to plain three-channel pixels.
func flatten(img image.Image) image.Image {
	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

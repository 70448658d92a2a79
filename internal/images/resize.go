package images

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Variant is one derived rendition ready for upload.
type Variant struct {
	Data        []byte
	ContentType string
}

// Resizer derives a rendition from the original upload bytes.
type Resizer interface {
	Resize(data []byte, contentType string, profile Profile) (Variant, error)
}

// ImagingResizer scales raster images with Lanczos resampling. JPEG sources
// stay JPEG at the profile quality; PNG, GIF and WebP sources re-encode as
// PNG since animated frames and WebP encoding are out of scope. SVG and
// unrecognized payloads pass through untouched.
type ImagingResizer struct{}

func NewImagingResizer() *ImagingResizer { return &ImagingResizer{} }

func (r *ImagingResizer) Resize(data []byte, contentType string, profile Profile) (Variant, error) {
	if !isRaster(contentType) {
		return Variant{Data: data, ContentType: contentType}, nil
	}

	img, err := decodeRaster(data, contentType)
	if err != nil {
		return Variant{}, fmt.Errorf("decode %s: %w", contentType, err)
	}

	// Never upscale; small sources are re-encoded at their own size.
	if img.Bounds().Dx() > profile.Width {
		img = imaging.Resize(img, profile.Width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if contentType == "image/jpeg" || contentType == "image/jpg" {
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(profile.Quality)); err != nil {
			return Variant{}, fmt.Errorf("encode jpeg: %w", err)
		}
		return Variant{Data: buf.Bytes(), ContentType: "image/jpeg"}, nil
	}

	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return Variant{}, fmt.Errorf("encode png: %w", err)
	}
	return Variant{Data: buf.Bytes(), ContentType: "image/png"}, nil
}

func isRaster(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

func decodeRaster(data []byte, contentType string) (image.Image, error) {
	if contentType == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// probeDimensions reads the source header for width and height. Vector and
// unrecognized payloads report no dimensions.
func probeDimensions(data []byte, contentType string) (width, height int, ok bool) {
	if !isRaster(contentType) {
		return 0, 0, false
	}
	if contentType == "image/webp" {
		cfg, err := webp.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return 0, 0, false
		}
		return cfg.Width, cfg.Height, true
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}

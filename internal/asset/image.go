package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

const (
	// MIMEJPEG is the only accepted upload format.
	MIMEJPEG = "image/jpeg"

	// MaxImageBytes is the upload size ceiling.
	MaxImageBytes = 500000

	// CanonicalSize is the width and height of the stored asset.
	CanonicalSize = 800

	jpegQuality = 80
)

var (
	// ErrUnsupportedFormat is returned when the upload is not a
	// decodable JPEG.
	ErrUnsupportedFormat = errors.New("asset: image must be a JPEG")

	// ErrImageTooLarge is returned when the upload exceeds MaxImageBytes.
	ErrImageTooLarge = errors.New("asset: image exceeds size limit")

	// ErrImageTooSmall is returned when either dimension is below
	// CanonicalSize.
	ErrImageTooSmall = errors.New("asset: image dimensions too small")
)

// NormalizeImage validates an uploaded image and produces the canonical
// square asset. An exact 800x800 upload passes through verbatim so it
// never loses quality to a re-encode; anything larger is resized to
// exactly 800x800 and re-encoded.
func NormalizeImage(data []byte, mimeType string) ([]byte, error) {
	if mimeType != MIMEJPEG {
		return nil, fmt.Errorf("%w, got %q", ErrUnsupportedFormat, mimeType)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if cfg.Width < CanonicalSize || cfg.Height < CanonicalSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooSmall, cfg.Width, cfg.Height)
	}

	if cfg.Width == CanonicalSize && cfg.Height == CanonicalSize {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	resized := imaging.Resize(img, CanonicalSize, CanonicalSize, imaging.Lanczos)

	var out bytes.Buffer
	if err := imaging.Encode(&out, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return out.Bytes(), nil
}

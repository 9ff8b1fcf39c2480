package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrProcessing is returned when the upload cannot be decoded or re-encoded.
var ErrProcessing = errors.New("image processing failed")

const (
	DefaultMaxDimension = 800
	DefaultQuality      = 80
	OutputContentType   = "image/jpeg"
	OutputExtension     = ".jpg"
)

// ImageProcessor shrinks an image to fit a square box and re-encodes it as
// JPEG. It never enlarges and keeps the aspect ratio.
type ImageProcessor struct {
	MaxDimension int
	Quality      int
}

func NewImageProcessor(maxDimension, quality int) *ImageProcessor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &ImageProcessor{MaxDimension: maxDimension, Quality: quality}
}

// Process accepts JPEG, PNG, GIF and WebP input.
func (p *ImageProcessor) Process(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrProcessing, err)
	}

	// imaging.Fit returns a copy of the original when it already fits.
	resized := imaging.Fit(img, p.MaxDimension, p.MaxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrProcessing, err)
	}
	return buf.Bytes(), nil
}

package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageService provides image processing operations for cover art.
//
// ImageService is used to:
//   - Resize artwork to fit a maximum edge length before embedding it
//   - Convert PNG or WebP artwork to JPEG, the format the tagger declares
//
// Example usage:
//
//	svc := NewImageService()
//	artwork, _ := client.DownloadBytes(ctx, info.ArtworkURL)
//	jpeg, err := svc.PrepareArtwork(ctx, artwork, 1000)
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService that encodes at JPEG quality 90.
func NewImageService() *ImageService {
	return &ImageService{quality: 90}
}

// PrepareArtwork returns data as a JPEG whose longest edge is at most
// maxSize pixels. A maxSize of 0 disables resizing.
//
// JPEG input that already fits is returned unchanged.
func (s *ImageService) PrepareArtwork(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode artwork: %w", err)
	}

	fits := maxSize <= 0 || (cfg.Width <= maxSize && cfg.Height <= maxSize)
	switch {
	case fits && format == "jpeg":
		return data, nil
	case fits:
		return s.ConvertToJPEG(ctx, data)
	default:
		return s.ResizeImage(ctx, data, maxSize, maxSize)
	}
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved and images are never enlarged. The result
// is JPEG-encoded. The Catmull-Rom algorithm is used for high-quality
// resizing.
//
// Example:
//
//	// Resize to fit within 1000x1000, maintaining aspect ratio
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x666
//	// A 800x600 image remains 800x600 (but re-encoded)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return s.encode(dst)
}

// ConvertToJPEG converts an image to JPEG format.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return s.encode(img)
}

func (s *ImageService) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales width x height down to fit maxWidth x maxHeight,
// preserving the aspect ratio.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = max(1, int(float64(maxHeight)*ratio))
		height = maxHeight
	} else {
		// Width is the limiting factor
		height = max(1, int(float64(maxWidth)/ratio))
		width = maxWidth
	}
	return width, height
}

package ocr

import "context"

// Engine recognizes text in raster images. Implementations wrap an external
// recognition backend and must be safe for concurrent use.
type Engine interface {
	// ImageText runs recognition on an encoded image (PNG or JPEG) and
	// returns the recognized text. An image with no recognizable text
	// yields an empty string, not an error.
	ImageText(ctx context.Context, image []byte) (string, error)

	// Close releases the backend resources. The engine must not be used
	// after Close returns.
	Close() error
}

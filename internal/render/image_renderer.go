package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"
)

// ImageRenderer keeps the latest presented frame in memory. The simulator
// serves it to the browser.
type ImageRenderer struct {
	mu     sync.RWMutex
	frame  *image.RGBA
	frames int64
}

func NewImageRenderer() *ImageRenderer { return &ImageRenderer{} }

func (r *ImageRenderer) Start(ctx context.Context) error { return nil }
func (r *ImageRenderer) Stop() error                     { return nil }

func (r *ImageRenderer) Present(frame *image.RGBA) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frame == nil || r.frame.Bounds() != frame.Bounds() {
		r.frame = image.NewRGBA(frame.Bounds())
	}
	copy(r.frame.Pix, frame.Pix)
	r.frames++
	return nil
}

// Frames returns the number of frames presented so far.
func (r *ImageRenderer) Frames() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frames
}

// Snapshot returns a copy of the latest frame, or nil before the first one.
func (r *ImageRenderer) Snapshot() *image.RGBA {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.frame == nil {
		return nil
	}
	out := image.NewRGBA(r.frame.Bounds())
	copy(out.Pix, r.frame.Pix)
	return out
}

// PNG encodes the latest frame.
func (r *ImageRenderer) PNG() ([]byte, error) {
	frame := r.Snapshot()
	if frame == nil {
		return nil, fmt.Errorf("no frame presented yet")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

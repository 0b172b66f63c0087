package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/rook-computer/lifewheel/internal/wheel"
)

// ExportOptions control a still rendering of a wheel.
type ExportOptions struct {
	Width, Height int
	Fonts         *Fonts
	Renderer      *wheel.Renderer
	// KeepPlacement draws the wheel where the state puts it instead of centered.
	KeepPlacement bool
}

// RenderWheel draws st at rest onto a fresh canvas.
func RenderWheel(st wheel.State, opts ExportOptions) *image.RGBA {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = CanvasWidth, CanvasHeight
	}
	if opts.Renderer == nil {
		opts.Renderer = wheel.NewRenderer()
	}
	st = st.Clone()
	st.Normalize()
	if !opts.KeepPlacement {
		st.Placement = wheel.Neutral
	}
	surface := NewRasterSurface(opts.Width, opts.Height, opts.Fonts, nil)
	params := wheel.ParamsFor(st, float64(opts.Width), float64(opts.Height))
	opts.Renderer.Render(params, surface)
	return surface.Image()
}

// WriteWheelPNG renders st and writes it as PNG.
func WriteWheelPNG(w io.Writer, st wheel.State, opts ExportOptions) error {
	if err := png.Encode(w, RenderWheel(st, opts)); err != nil {
		return fmt.Errorf("encode wheel: %w", err)
	}
	return nil
}

// EncodePNG encodes img into memory.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

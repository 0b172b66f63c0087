package render

import (
	"context"
	"image"
	"image/color"
)

// Renderer presents finished frames to an output device.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	Present(frame *image.RGBA) error
}

// Stub implementations
type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error { return nil }
func (n *NoopRenderer) Stop() error                     { return nil }
func (n *NoopRenderer) Present(frame *image.RGBA) error { return nil }

// Drawer is an abstraction the surface provides to the overlay painter to draw
// primitives without exposing the raster details.
type Drawer interface {
	// Size returns the logical canvas size (in pixels).
	Size() (width int, height int)

	FillBackground()
	FillRect(rect image.Rectangle, c color.Color)
	StrokeRect(rect image.Rectangle, width int, c color.Color)

	// Generic text primitives.
	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	// Generic image primitives.
	ImageSize(img image.Image) (width int, height int)
	DrawImage(img image.Image, x, y int, opts ImageOpts)
	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode, opts ImageOpts)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

type FontWeight int

const (
	WeightRegular FontWeight = iota
	WeightBold
	WeightItalic
)

const defaultTextSize = 18

// TextStyle describes how to render text.
// Coordinates for DrawText use a top-left anchor for Y.
// For X, Align controls how x is interpreted.
type TextStyle struct {
	Color  color.Color
	Size   int // pixel size; 0 means renderer default
	Align  TextAlign
	Weight FontWeight
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeFill
	ScaleModeStretch
)

type ImageOpts struct {
	// Opacity in [0, 1]; zero is treated as fully opaque.
	Opacity float64
}

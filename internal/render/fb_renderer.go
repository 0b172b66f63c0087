package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
)

// DefaultFBDevice is the framebuffer opened when no device is configured.
const DefaultFBDevice = "/dev/fb0"

// FBRenderer presents frames on the Linux framebuffer, scaling the logical
// canvas to the device resolution.
type FBRenderer struct {
	Device string
	Logger Logger
	Debug  bool

	fbDev   *fb.Device
	running atomic.Bool
	frames  atomic.Int64
}

func NewFBRenderer(device string) *FBRenderer {
	if device == "" {
		device = DefaultFBDevice
	}
	return &FBRenderer{Device: device}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return err
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", r.Device, bounds.Dx(), bounds.Dy())
	}
	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// Present copies frame to the framebuffer.
func (r *FBRenderer) Present(frame *image.RGBA) error {
	if !r.running.Load() || r.fbDev == nil {
		return errors.New("framebuffer not started")
	}
	blitToFB(r.fbDev, frame)
	n := r.frames.Add(1)
	if r.Debug && r.Logger != nil && n%60 == 0 {
		r.Logger.Infof("fb", "presented %d frames", n)
	}
	return nil
}

// Helper: blit canvas to framebuffer via nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA) {
	if dev == nil || canvas == nil {
		return
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	canvasWidth := canvas.Bounds().Dx()
	canvasHeight := canvas.Bounds().Dy()
	// For simplicity, write directly using NN sampling from canvas
	for y := 0; y < fbHeight; y++ {
		sy := (y * canvasHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * canvasWidth) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}

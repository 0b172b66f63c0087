package render

import "image/color"

// Global render configuration for colors and logical canvas.
var (
	// Page colors behind the wheel and of full-screen overlays.
	Background        = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF} // #ffffff
	ScreenOverlayFill = color.RGBA{R: 0xF2, G: 0xE2, B: 0xC0, A: 0xFF} // #f2e2c0
	Foreground        = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xFF} // #444444
	Accent            = color.RGBA{R: 0x98, G: 0x20, B: 0x98, A: 0xFF} // #982098

	// Logical canvas size; scaled to framebuffer.
	CanvasWidth  = 1260
	CanvasHeight = 630
)

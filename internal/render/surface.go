package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype/raster"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/lifewheel/internal/wheel"
)

// arcStep is the largest angle covered by one straight segment of an arc.
const arcStep = math.Pi / 90

type pathMode int

const (
	modeNone pathMode = iota
	modeFill
	modeStroke
)

// RasterSurface draws wheels and overlay primitives onto an offscreen RGBA
// canvas. Filled shapes and strokes go through the freetype rasterizer.
type RasterSurface struct {
	img     *image.RGBA
	fonts   *Fonts
	colors  colorCache
	rast    *raster.Rasterizer
	painter *raster.RGBAPainter

	mode        pathMode
	path        raster.Path
	color       color.NRGBA
	strokeWidth float64
	hasPoint    bool
	start, cur  fixed.Point26_6
}

func NewRasterSurface(width, height int, fonts *Fonts, logger Logger) *RasterSurface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if fonts == nil {
		fonts = LoadFonts(logger)
	}
	s := &RasterSurface{
		img:     img,
		fonts:   fonts,
		rast:    raster.NewRasterizer(width, height),
		painter: raster.NewRGBAPainter(img),
	}
	s.colors.onBad = func(c string, err error) {
		if logger != nil {
			logger.Errorf("fb", "bad color %q, using black: %v", c, err)
		}
	}
	s.FillBackground()
	return s
}

// Image returns the canvas the surface draws on.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *RasterSurface) Clear() { s.FillBackground() }

func (s *RasterSurface) FillBackground() {
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
}

func toFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}

func (s *RasterSurface) closeSubpath() {
	if s.hasPoint && s.mode == modeFill && s.cur != s.start {
		s.path.Add1(s.start)
	}
}

func (s *RasterSurface) MoveTo(x, y float64) {
	if s.mode == modeNone {
		return
	}
	s.closeSubpath()
	p := toFixed(x, y)
	s.path.Start(p)
	s.start, s.cur, s.hasPoint = p, p, true
}

func (s *RasterSurface) LineTo(x, y float64) {
	if s.mode == modeNone {
		return
	}
	if !s.hasPoint {
		s.MoveTo(x, y)
		return
	}
	p := toFixed(x, y)
	if p == s.cur {
		return
	}
	s.path.Add1(p)
	s.cur = p
}

// Arc joins the current point to the arc start with a line, like a 2D canvas.
func (s *RasterSurface) Arc(cx, cy, radius, startAngle, endAngle float64) {
	if s.mode == modeNone || radius <= 0 {
		return
	}
	sweep := endAngle - startAngle
	steps := int(math.Ceil(math.Abs(sweep) / arcStep))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		a := startAngle + sweep*float64(i)/float64(steps)
		x, y := cx+radius*math.Cos(a), cy+radius*math.Sin(a)
		if i == 0 && !s.hasPoint {
			s.MoveTo(x, y)
			continue
		}
		s.LineTo(x, y)
	}
}

func (s *RasterSurface) begin(mode pathMode, c wheel.Color) {
	s.mode = mode
	s.path.Clear()
	s.hasPoint = false
	s.color = s.colors.get(string(c))
}

func (s *RasterSurface) OpenFilledShape(fill wheel.Color) {
	s.begin(modeFill, fill)
}

func (s *RasterSurface) CloseFilledShape() {
	if s.mode != modeFill {
		return
	}
	s.closeSubpath()
	if len(s.path) > 0 {
		s.rast.Clear()
		s.rast.UseNonZeroWinding = false
		s.rast.AddPath(s.path)
		s.paint(s.color)
	}
	s.mode = modeNone
}

func (s *RasterSurface) OpenStroke(width float64, c wheel.Color) {
	s.begin(modeStroke, c)
	s.strokeWidth = width
}

func (s *RasterSurface) CloseStroke() {
	if s.mode != modeStroke {
		return
	}
	if len(s.path) > 0 && s.strokeWidth > 0 {
		s.rast.Clear()
		s.rast.UseNonZeroWinding = true
		s.rast.AddStroke(s.path, fixed.Int26_6(math.Round(s.strokeWidth*64)), raster.ButtCapper, raster.RoundJoiner)
		s.paint(s.color)
	}
	s.mode = modeNone
}

func (s *RasterSurface) paint(c color.NRGBA) {
	if c.A == 0 {
		return
	}
	s.painter.SetColor(c)
	s.rast.Rasterize(s.painter)
}

// DrawArcedText draws text centered on the rim point, baseline on the point,
// rotated so its baseline is tangent to the circle.
func (s *RasterSurface) DrawArcedText(text string, c wheel.Color, size float64, fontFamily string, cx, cy, radius, angle float64) {
	if text == "" || size <= 0 {
		return
	}
	face := s.fonts.LabelFace(size)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	width := font.MeasureString(face, text).Ceil()
	if width <= 0 || ascent+descent <= 0 {
		return
	}

	// Render upright into a scratch image with the baseline at y=ascent.
	scratch := image.NewRGBA(image.Rect(0, 0, width, ascent+descent))
	drawer := &font.Drawer{
		Dst:  scratch,
		Src:  image.NewUniform(s.colors.get(string(c))),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	drawer.DrawString(text)

	// Map the baseline center of the scratch image onto the rim point.
	px := cx + radius*math.Cos(angle)
	py := cy + radius*math.Sin(angle)
	theta := angle + math.Pi/2
	cos, sin := math.Cos(theta), math.Sin(theta)
	u, v := float64(width)/2, float64(ascent)
	m := f64.Aff3{
		cos, -sin, px - (cos*u - sin*v),
		sin, cos, py - (sin*u + cos*v),
	}
	xdraw.BiLinear.Transform(s.img, m, scratch, scratch.Bounds(), xdraw.Over, nil)
}

// Drawer primitives

func (s *RasterSurface) FillRect(rect image.Rectangle, c color.Color) {
	draw.Draw(s.img, rect.Intersect(s.img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Over)
}

func (s *RasterSurface) StrokeRect(rect image.Rectangle, width int, c color.Color) {
	if width <= 0 {
		return
	}
	src := &image.Uniform{C: c}
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width),
		image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y+width, rect.Min.X+width, rect.Max.Y-width),
		image.Rect(rect.Max.X-width, rect.Min.Y+width, rect.Max.X, rect.Max.Y-width),
	}
	for _, e := range edges {
		draw.Draw(s.img, e.Intersect(s.img.Bounds()), src, image.Point{}, draw.Over)
	}
}

func (s *RasterSurface) textFace(style TextStyle) font.Face {
	return s.fonts.TextFace(style.Weight, style.Size)
}

func (s *RasterSurface) MeasureText(text string, style TextStyle) TextMetrics {
	face := s.textFace(style)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: metrics.Height.Ceil(),
	}
}

func (s *RasterSurface) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := s.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	fg := style.Color
	if fg == nil {
		fg = Foreground
	}
	drawer := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(fg),
		Face: s.textFace(style),
		Dot:  fixed.P(x, y+m.Ascent),
	}
	drawer.DrawString(text)
	return m
}

func (s *RasterSurface) ImageSize(img image.Image) (int, int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func opacityMask(opts ImageOpts) image.Image {
	if opts.Opacity <= 0 || opts.Opacity >= 1 {
		return nil
	}
	return image.NewUniform(color.Alpha{A: uint8(math.Round(opts.Opacity * 255))})
}

func (s *RasterSurface) DrawImage(img image.Image, x, y int, opts ImageOpts) {
	if img == nil {
		return
	}
	b := img.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	if mask := opacityMask(opts); mask != nil {
		draw.DrawMask(s.img, dst, img, b.Min, mask, image.Point{}, draw.Over)
		return
	}
	draw.Draw(s.img, dst, img, b.Min, draw.Over)
}

func (s *RasterSurface) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode, opts ImageOpts) {
	if img == nil || rect.Empty() {
		return
	}
	src := img.Bounds()
	dst := rect
	if mode != ScaleModeStretch {
		scaleX := float64(rect.Dx()) / float64(src.Dx())
		scaleY := float64(rect.Dy()) / float64(src.Dy())
		scale := math.Min(scaleX, scaleY)
		if mode == ScaleModeFill {
			scale = math.Max(scaleX, scaleY)
		}
		w := int(float64(src.Dx()) * scale)
		h := int(float64(src.Dy()) * scale)
		x := rect.Min.X + (rect.Dx()-w)/2
		y := rect.Min.Y + (rect.Dy()-h)/2
		dst = image.Rect(x, y, x+w, y+h)
	}
	// Scale into a temporary RGBA and composite with alpha
	temp := image.NewRGBA(image.Rect(0, 0, dst.Dx(), dst.Dy()))
	xdraw.NearestNeighbor.Scale(temp, temp.Bounds(), img, src, xdraw.Over, nil)
	clip := dst.Intersect(rect)
	offset := clip.Min.Sub(dst.Min)
	if mask := opacityMask(opts); mask != nil {
		draw.DrawMask(s.img, clip, temp, offset, mask, image.Point{}, draw.Over)
		return
	}
	draw.Draw(s.img, clip, temp, offset, draw.Over)
}

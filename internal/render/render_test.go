package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/lifewheel/internal/render/layout"
	"github.com/rook-computer/lifewheel/internal/ui"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"white", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#8cc", color.NRGBA{R: 0x88, G: 0xcc, B: 0xcc, A: 0xff}},
		{"#982098", color.NRGBA{R: 0x98, G: 0x20, B: 0x98, A: 0xff}},
		{" RGB(10, 20, 300) ", color.NRGBA{R: 10, G: 20, B: 255, A: 0xff}},
		{"rgba(255,255,255,0.75)", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 191}},
		{"transparent", color.NRGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "#12", "rgb(1,2)", "hsl(1,2,3)", "rgba(1,2,3,x)"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorCacheFallsBackToBlack(t *testing.T) {
	var bad []string
	c := colorCache{onBad: func(s string, err error) { bad = append(bad, s) }}

	assert.Equal(t, color.NRGBA{A: 0xff}, c.get("nope"))
	assert.Equal(t, color.NRGBA{A: 0xff}, c.get("nope"))
	assert.Equal(t, []string{"nope"}, bad, "bad colors are reported once")
}

func TestWithOpacity(t *testing.T) {
	assert.Equal(t, uint8(128), WithOpacity(Accent, 0.5).A)
	assert.Equal(t, uint8(0), WithOpacity(Accent, -1).A)
	assert.Equal(t, uint8(255), WithOpacity(Accent, 2).A)
}

func nrgbaAt(img *image.RGBA, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// In the neutral placement of a 1260x630 canvas the wheel is centered at
// (630,315) with radius 283.5, and section 0 points straight up.
func TestRenderWheelPixels(t *testing.T) {
	fonts := LoadFonts(nil)
	st := wheel.DefaultState()
	st.Visible = true

	img := RenderWheel(st, ExportOptions{Fonts: fonts})
	require.Equal(t, image.Rect(0, 0, CanvasWidth, CanvasHeight), img.Bounds())

	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nrgbaAt(img, 5, 5), "background")
	assert.Equal(t, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}, nrgbaAt(img, 630, 215), "unknown gap")
	assert.Equal(t, color.NRGBA{R: 0x88, G: 0xcc, B: 0xcc, A: 0xff}, nrgbaAt(img, 630, 55), "rim tab")

	st.Values[0] = wheel.ValueOf(5)
	img = RenderWheel(st, ExportOptions{Fonts: fonts})
	assert.Equal(t, color.NRGBA{R: 0x88, G: 0xcc, B: 0xcc, A: 0xff}, nrgbaAt(img, 630, 235), "satisfaction bar")
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nrgbaAt(img, 630, 135), "dissatisfaction gap")
}

func TestRenderWheelKeepsPlacementOnRequest(t *testing.T) {
	st := wheel.DefaultState()
	st.Placement = wheel.Offstage

	img := RenderWheel(st, ExportOptions{Fonts: LoadFonts(nil), KeepPlacement: true})
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nrgbaAt(img, 630, 215))
}

func TestWriteWheelPNG(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWheelPNG(&buf, wheel.DefaultState(), ExportOptions{Width: 200, Height: 100, Fonts: LoadFonts(nil)})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
}

func TestArcedTextDrawsNearRim(t *testing.T) {
	s := NewRasterSurface(400, 400, LoadFonts(nil), nil)
	s.DrawArcedText("Health", "#381468", 24, "", 200, 200, 150, -1.5707963267948966)

	changed := 0
	for y := 20; y < 80; y++ {
		for x := 140; x < 260; x++ {
			if nrgbaAt(s.Image(), x, y) != (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 20)
}

func TestImageRenderer(t *testing.T) {
	r := NewImageRenderer()
	assert.Nil(t, r.Snapshot())
	_, err := r.PNG()
	assert.Error(t, err)

	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	frame.Set(1, 1, color.RGBA{R: 9, A: 255})
	require.NoError(t, r.Present(frame))
	frame.Set(1, 1, color.RGBA{G: 9, A: 255})

	snap := r.Snapshot()
	assert.Equal(t, color.RGBA{R: 9, A: 255}, snap.RGBAAt(1, 1), "presented frames are copied")
	assert.Equal(t, int64(1), r.Frames())

	data, err := r.PNG()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestQRCode(t *testing.T) {
	img, err := GenerateQRCodeImage("", 0)
	require.NoError(t, err)
	assert.Nil(t, img)

	img, err = GenerateQRCodeImage(WheelLink("http://10.0.0.2:8080/"), 0)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, "http://10.0.0.2:8080/api/v1/wheel.png", WheelLink("http://10.0.0.2:8080/"))
}

func TestCenterIn(t *testing.T) {
	r := layout.CenterIn(image.Rect(0, 0, 100, 50), 20, 10)
	assert.Equal(t, image.Rect(40, 20, 60, 30), r)

	r = layout.CenterIn(image.Rect(10, 10, 30, 30), 40, 40)
	assert.Equal(t, image.Rect(10, 10, 50, 50), r)
}

func TestInset(t *testing.T) {
	rect := image.Rect(10, 10, 50, 30)
	assert.Equal(t, image.Rect(14, 14, 46, 26), layout.Inset(rect, 4))
	assert.Equal(t, image.Rect(7, 7, 53, 33), layout.Inset(rect, -3), "negative padding grows")
	assert.Equal(t, image.Rect(30, 20, 30, 20), layout.Inset(rect, 100), "collapses onto the center")
}

func TestSplitAndFit(t *testing.T) {
	left, right := layout.SplitVertical(image.Rect(0, 0, 100, 40), 30)
	assert.Equal(t, image.Rect(0, 0, 30, 40), left)
	assert.Equal(t, image.Rect(30, 0, 100, 40), right)

	left, _ = layout.SplitVertical(image.Rect(0, 0, 100, 40), 200)
	assert.Equal(t, 100, left.Dx())

	assert.Equal(t, image.Rect(30, 0, 70, 40), layout.FitSquare(image.Rect(0, 0, 100, 40)))
}

// drawOp records the overlay painter's calls without rasterizing.
type drawOp struct {
	op    string
	rect  image.Rectangle
	text  string
	width int
	color color.Color
}

type fakeDrawer struct {
	ops []drawOp
}

func (d *fakeDrawer) Size() (int, int) { return CanvasWidth, CanvasHeight }
func (d *fakeDrawer) FillBackground()  {}

func (d *fakeDrawer) FillRect(rect image.Rectangle, c color.Color) {
	d.ops = append(d.ops, drawOp{op: "fill", rect: rect, color: c})
}

func (d *fakeDrawer) StrokeRect(rect image.Rectangle, width int, c color.Color) {
	d.ops = append(d.ops, drawOp{op: "stroke", rect: rect, width: width, color: c})
}

func (d *fakeDrawer) MeasureText(text string, style TextStyle) TextMetrics {
	return TextMetrics{Width: 10 * len(text), Height: 20, Ascent: 16, Descent: 4, LineHeight: 24}
}

func (d *fakeDrawer) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	d.ops = append(d.ops, drawOp{op: "text", rect: image.Rect(x, y, x, y), text: text, color: style.Color})
	return d.MeasureText(text, style)
}

func (d *fakeDrawer) ImageSize(img image.Image) (int, int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func (d *fakeDrawer) DrawImage(img image.Image, x, y int, opts ImageOpts) {
	d.ops = append(d.ops, drawOp{op: "image"})
}

func (d *fakeDrawer) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode, opts ImageOpts) {
	d.ops = append(d.ops, drawOp{op: "image", rect: rect})
}

func (d *fakeDrawer) texts() []string {
	var out []string
	for _, op := range d.ops {
		if op.op == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

func TestOverlayPainterScreenOverlay(t *testing.T) {
	d := &fakeDrawer{}
	hidden := ui.Text("normalText", "secret")
	hidden.Hidden = true
	ok := ui.Button("button", "OK", func() {})
	root := ui.Container("screenOverlay",
		ui.Text("bigBigMessage", "Welcome"),
		hidden,
		ui.Container("buttonContainer", ok, ui.Button("linkButton", "Skip", func() {})),
	)

	var p OverlayPainter
	p.Paint(d, []ui.View{{Node: root, Opacity: 1}}, ok.ID)

	require.NotEmpty(t, d.ops)
	assert.Equal(t, "fill", d.ops[0].op)
	assert.Equal(t, image.Rect(0, 0, CanvasWidth, CanvasHeight), d.ops[0].rect)
	assert.Equal(t, []string{"Welcome", "OK", "Skip"}, d.texts())

	focusRings := 0
	for _, op := range d.ops {
		if op.op == "stroke" && op.width == 3 {
			focusRings++
		}
	}
	assert.Equal(t, 1, focusRings)
}

func TestOverlayPainterRightHalfAndOpacity(t *testing.T) {
	d := &fakeDrawer{}
	root := ui.Container("rightHalf", ui.Text("normalText", "Rate this"))

	var p OverlayPainter
	p.Paint(d, []ui.View{{Node: root, Opacity: 0.5}, {Node: ui.Text("", "gone"), Opacity: 0}}, "")

	require.Len(t, d.ops, 1)
	op := d.ops[0]
	assert.Equal(t, "Rate this", op.text)
	assert.Greater(t, op.rect.Min.X, CanvasWidth/2)
	assert.Equal(t, uint8(128), color.NRGBAModel.Convert(op.color).(color.NRGBA).A)
}

func TestOverlayPainterWrapsText(t *testing.T) {
	d := &fakeDrawer{}
	long := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen"
	var p OverlayPainter
	p.Paint(d, []ui.View{{Node: ui.Container("overlay", ui.Text("normalText", long)), Opacity: 1}}, "")

	lines := d.texts()
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, 10*len(l), paragraphWidth)
	}
}

func TestOverlayPainterInputs(t *testing.T) {
	d := &fakeDrawer{}
	in := ui.TextInput("inputText", "Area name", nil)
	num := ui.NumberInput("", 0, 10, nil)
	num.SetNumber(7)
	root := ui.Container("overlay", ui.Container("row", in, num))

	var p OverlayPainter
	p.Paint(d, []ui.View{{Node: root, Opacity: 1}}, in.ID)

	assert.Equal(t, []string{"Area name", "7"}, d.texts())

	var borders []drawOp
	for _, op := range d.ops {
		if op.op == "stroke" {
			borders = append(borders, op)
		}
	}
	require.Len(t, borders, 2)
	assert.Equal(t, 3, borders[0].width, "focused input")
	assert.Equal(t, color.NRGBAModel.Convert(Accent), borders[0].color)
	assert.Equal(t, 2, borders[1].width)
	assert.Equal(t, color.Color(inputBorder), borders[1].color)
}

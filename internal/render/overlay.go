package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/rook-computer/lifewheel/internal/render/layout"
	"github.com/rook-computer/lifewheel/internal/ui"
)

const (
	overlayPadding   = 40
	rightHalfPadding = 24
	columnGap        = 12
	rowGap           = 8
	buttonPadX       = 14
	buttonPadY       = 6
	textInputWidth   = 240
	numberInputWidth = 120
	maxImageSize     = 220
	paragraphWidth   = 640
)

var (
	buttonFill    = MustParseColor("#f4f4f4")
	buttonBorder  = MustParseColor("#999")
	inputBorder   = MustParseColor("#45a5c5")
	inputFill     = MustParseColor("white")
	placeholderFg = MustParseColor("#999")
	disabledFg    = MustParseColor("#aaa")
)

type classStyle struct {
	class  string
	size   int
	weight FontWeight
	color  color.Color
}

// Text styles by class, most specific first.
var classStyles = []classStyle{
	{"bigBigMessage", 64, WeightBold, MustParseColor("#882299")},
	{"bigMessage", 32, WeightRegular, MustParseColor("#444")},
	{"titleBar", 24, WeightRegular, MustParseColor("#777")},
	{"pseudoLink", 16, WeightRegular, MustParseColor("#777")},
	{"boxLabel", 16, WeightRegular, Accent},
	{"linkButton", 16, WeightRegular, Accent},
	{"deleteButton", 18, WeightRegular, MustParseColor("#333")},
	{"button", 20, WeightRegular, MustParseColor("#222")},
	{"inputText", 18, WeightRegular, MustParseColor("black")},
	{"selectionLabel", 18, WeightRegular, MustParseColor("#333")},
	{"normalText", 18, WeightRegular, MustParseColor("#333")},
}

var rowClasses = []string{"row", "buttonContainer", "flow", "selectionElement", "borderBox", "inline"}

func textStyleFor(n *ui.Node) TextStyle {
	style := TextStyle{Size: defaultTextSize, Color: Foreground, Align: TextAlignCenter}
	for _, cs := range classStyles {
		if n.HasClass(cs.class) {
			style.Size, style.Weight, style.Color = cs.size, cs.weight, cs.color
			break
		}
	}
	if n.HasClass("bold") {
		style.Weight = WeightBold
		style.Color = Accent
	}
	if n.HasClass("italic") {
		style.Weight = WeightItalic
	}
	return style
}

func isRow(n *ui.Node) bool {
	for _, c := range rowClasses {
		if n.HasClass(c) {
			return true
		}
	}
	if len(n.Children) < 2 {
		return false
	}
	interactive := false
	for _, c := range n.Children {
		switch c.Kind {
		case ui.KindContainer:
			return false
		case ui.KindButton, ui.KindTextInput, ui.KindNumberInput:
			interactive = true
		}
	}
	return interactive
}

// OverlayPainter lays out and draws overlay trees above the wheel.
type OverlayPainter struct{}

// Paint draws views in order. focusID marks the node the physical buttons act on.
func (p *OverlayPainter) Paint(d Drawer, views []ui.View, focusID string) {
	for _, v := range views {
		if v.Opacity <= 0 || v.Node.Hidden {
			continue
		}
		pc := paintContext{d: d, opacity: v.Opacity, focus: focusID}
		pc.paintRoot(v.Node)
	}
}

type paintContext struct {
	d       Drawer
	opacity float64
	focus   string
}

func (pc paintContext) color(c color.Color) color.Color {
	return WithOpacity(c, pc.opacity)
}

func (pc paintContext) paintRoot(n *ui.Node) {
	w, h := pc.d.Size()
	bounds := image.Rect(0, 0, w, h)
	area := layout.Inset(bounds, overlayPadding)

	switch {
	case n.HasClass("screenOverlay"):
		pc.d.FillRect(bounds, pc.color(ScreenOverlayFill))
	case n.HasClass("rightHalf"):
		_, right := layout.SplitVertical(bounds, w/2)
		area = layout.Inset(right, rightHalfPadding)
	}

	cw, ch := pc.measure(n, area.Dx())
	pc.draw(n, layout.CenterIn(area, cw, ch))
}

func (pc paintContext) measure(n *ui.Node, maxW int) (int, int) {
	if n.Hidden {
		return 0, 0
	}
	switch n.Kind {
	case ui.KindText:
		style := textStyleFor(n)
		lines := pc.wrap(n.Text, style, minInt(maxW, paragraphWidth))
		lh := pc.lineHeight(style)
		w := 0
		for _, l := range lines {
			w = maxInt(w, pc.d.MeasureText(l, style).Width)
		}
		return w, lh * len(lines)
	case ui.KindButton:
		m := pc.d.MeasureText(n.Text, textStyleFor(n))
		return m.Width + 2*buttonPadX, m.Height + 2*buttonPadY
	case ui.KindTextInput:
		m := pc.d.MeasureText("Mg", textStyleFor(n))
		return minInt(textInputWidth, maxW), m.Height + 2*buttonPadY
	case ui.KindNumberInput:
		m := pc.d.MeasureText("10", textStyleFor(n))
		return numberInputWidth, m.Height + 2*buttonPadY
	case ui.KindImage:
		iw, ih := pc.d.ImageSize(n.Image)
		size := minInt(maxImageSize, maxInt(iw, ih))
		return size, size
	}

	if n.HasClass("halfWidth") {
		half := (maxW - rowGap) / 2
		_, h := pc.measureBox(n, half)
		return half, h
	}
	return pc.measureBox(n, maxW)
}

// measureBox measures the children of a container laid out in rows or a column.
func (pc paintContext) measureBox(n *ui.Node, maxW int) (int, int) {
	if isRow(n) {
		lines := pc.rowLines(n, maxW)
		w, h := 0, 0
		for i, line := range lines {
			if i > 0 {
				h += rowGap
			}
			w = maxInt(w, line.width)
			h += line.height
		}
		return w, maxInt(h, n.Height)
	}
	w, h, count := 0, 0, 0
	for _, c := range n.Children {
		cw, ch := pc.measure(c, maxW)
		if cw == 0 && ch == 0 {
			continue
		}
		if count > 0 {
			h += columnGap
		}
		w = maxInt(w, cw)
		h += ch
		count++
	}
	return w, maxInt(h, n.Height)
}

type rowLine struct {
	nodes         []*ui.Node
	sizes         []image.Point
	width, height int
}

func (pc paintContext) rowLines(n *ui.Node, maxW int) []rowLine {
	var lines []rowLine
	var cur rowLine
	for _, c := range n.Children {
		cw, ch := pc.measure(c, maxW)
		if cw == 0 && ch == 0 {
			continue
		}
		if len(cur.nodes) > 0 && cur.width+rowGap+cw > maxW {
			lines = append(lines, cur)
			cur = rowLine{}
		}
		if len(cur.nodes) > 0 {
			cur.width += rowGap
		}
		cur.nodes = append(cur.nodes, c)
		cur.sizes = append(cur.sizes, image.Pt(cw, ch))
		cur.width += cw
		cur.height = maxInt(cur.height, ch)
	}
	if len(cur.nodes) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func (pc paintContext) draw(n *ui.Node, rect image.Rectangle) {
	if n.Hidden {
		return
	}
	switch n.Kind {
	case ui.KindText:
		style := textStyleFor(n)
		style.Color = pc.color(style.Color)
		lh := pc.lineHeight(style)
		y := rect.Min.Y
		for _, line := range pc.wrap(n.Text, style, rect.Dx()) {
			pc.d.DrawText(line, rect.Min.X+rect.Dx()/2, y, style)
			y += lh
		}
		return
	case ui.KindButton:
		pc.drawButton(n, rect)
		return
	case ui.KindTextInput, ui.KindNumberInput:
		pc.drawInput(n, rect)
		return
	case ui.KindImage:
		pc.d.DrawImageInRect(n.Image, layout.FitSquare(rect), ScaleModeFit, ImageOpts{Opacity: pc.opacity})
		return
	}

	if n.OnClick != nil && n.ID == pc.focus {
		pc.d.StrokeRect(layout.Inset(rect, -6), 2, pc.color(Accent))
	}
	if isRow(n) {
		if n.HasClass("borderBox") {
			pc.d.StrokeRect(layout.Inset(rect, -8), 2, pc.color(Accent))
		}
		y := rect.Min.Y
		for _, line := range pc.rowLines(n, rect.Dx()) {
			x := rect.Min.X + (rect.Dx()-line.width)/2
			for i, c := range line.nodes {
				size := line.sizes[i]
				cy := y + (line.height-size.Y)/2
				pc.draw(c, image.Rect(x, cy, x+size.X, cy+size.Y))
				x += size.X + rowGap
			}
			y += line.height + rowGap
		}
		return
	}
	y := rect.Min.Y
	for _, c := range n.Children {
		cw, ch := pc.measure(c, rect.Dx())
		if cw == 0 && ch == 0 {
			continue
		}
		x := rect.Min.X + (rect.Dx()-cw)/2
		pc.draw(c, image.Rect(x, y, x+cw, y+ch))
		y += ch + columnGap
	}
}

func (pc paintContext) drawButton(n *ui.Node, rect image.Rectangle) {
	style := textStyleFor(n)
	if !n.HasClass("linkButton") {
		pc.d.FillRect(rect, pc.color(buttonFill))
		pc.d.StrokeRect(rect, 1, pc.color(buttonBorder))
	}
	if n.ID == pc.focus {
		pc.d.StrokeRect(layout.Inset(rect, -3), 3, pc.color(Accent))
	}
	if !n.Active() {
		style.Color = disabledFg
	}
	style.Color = pc.color(style.Color)
	m := pc.d.MeasureText(n.Text, style)
	pc.d.DrawText(n.Text, rect.Min.X+rect.Dx()/2, rect.Min.Y+(rect.Dy()-m.Height)/2, style)
}

func (pc paintContext) drawInput(n *ui.Node, rect image.Rectangle) {
	style := textStyleFor(n)
	style.Align = TextAlignLeft
	pc.d.FillRect(rect, pc.color(inputFill))
	var border color.Color = inputBorder
	width := 2
	if n.ID == pc.focus {
		border, width = Accent, 3
	}
	pc.d.StrokeRect(rect, width, pc.color(border))

	text := n.Value
	if n.Kind == ui.KindNumberInput {
		text = ui.FormatNumber(n.Number)
	}
	if text == "" {
		text = n.Placeholder
		style.Color = placeholderFg
	}
	style.Color = pc.color(style.Color)
	m := pc.d.MeasureText(text, style)
	pc.d.DrawText(text, rect.Min.X+buttonPadX, rect.Min.Y+(rect.Dy()-m.Height)/2, style)
}

func (pc paintContext) lineHeight(style TextStyle) int {
	m := pc.d.MeasureText("Mg", style)
	return maxInt(m.LineHeight, m.Height)
}

// wrap breaks text into lines no wider than maxW, keeping explicit newlines.
func (pc paintContext) wrap(text string, style TextStyle, maxW int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if maxW > 0 && pc.d.MeasureText(candidate, style).Width > maxW {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

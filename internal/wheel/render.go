package wheel

import "math"

// SliceStyle holds the per-segment colors that are not part of the wheel state.
type SliceStyle struct {
	NegativeFill Color
	LabelColor   Color
}

// Styles are the line widths, colors and fonts used by the renderer.
type Styles struct {
	OutlineWidth       float64
	OutlineColor       Color
	RadialDividerWidth float64
	RadialDividerColor Color
	RimDividerWidth    float64
	RimDividerColor    Color
	UnknownFill        Color
	FontFamily         string
	Slices             [NumSegments]SliceStyle
}

func DefaultStyles() Styles {
	st := Styles{
		OutlineWidth:       1,
		OutlineColor:       "rgba(255,255,255,0.75)",
		RadialDividerWidth: 1.5,
		RadialDividerColor: "white",
		RimDividerWidth:    2,
		RimDividerColor:    "white",
		UnknownFill:        "#ddd",
		FontFamily:         "Verdana,Arial",
	}
	for i := range st.Slices {
		st.Slices[i] = SliceStyle{NegativeFill: "white", LabelColor: "#381468"}
	}
	return st
}

func (s Styles) slice(i int) SliceStyle {
	return s.Slices[((i%NumSegments)+NumSegments)%NumSegments]
}

// Renderer draws wheels. It holds no per-frame state.
type Renderer struct {
	Styles Styles
}

func NewRenderer() *Renderer {
	return &Renderer{Styles: DefaultStyles()}
}

// LabelFontSize returns the label text size for a wheel of the given radius.
func LabelFontSize(radius float64) float64 {
	tabHeight := radius / 6
	return math.Floor(tabHeight/6) * 4
}

// Render issues the drawing calls for params on surface. The passes run in a fixed
// order because later passes paint over earlier ones.
func (r *Renderer) Render(params RenderParams, surface Surface) {
	radius := params.Radius
	if radius < 1 || math.IsNaN(radius) {
		return
	}
	center := params.Center
	tabHeight := radius / 6
	labelFontSize := LabelFontSize(radius)
	innerRadius := math.Max(0, radius-tabHeight-r.Styles.RimDividerWidth)
	angle := func(i float64) float64 { return SegmentAngle(params.BaseAngle, i) }

	wedge := func(fill Color, i int, distance float64) {
		surface.OpenFilledShape(fill)
		surface.MoveTo(center.X, center.Y)
		edge := pointAt(center, distance, angle(float64(i)))
		surface.LineTo(edge.X, edge.Y)
		surface.Arc(center.X, center.Y, distance, angle(float64(i)), angle(float64(i+1)))
		surface.CloseFilledShape()
	}

	// Pie slices.
	for i := 0; i < NumSegments; i++ {
		wedge(params.Fills[i], i, radius)
	}

	// Dissatisfaction gap, or the unknown shade for unrated segments.
	for i := 0; i < NumSegments; i++ {
		fill := r.Styles.slice(i).NegativeFill
		if !params.Values[i].Known {
			fill = r.Styles.UnknownFill
		}
		wedge(fill, i, innerRadius)
	}

	// Satisfaction bars.
	for i := 0; i < NumSegments; i++ {
		level := params.Values[i]
		if !level.Known || level.Clamped() <= 0 {
			continue
		}
		wedge(params.Fills[i], i, innerRadius*level.Clamped()/MaxValue)
	}

	// Spokes.
	surface.OpenStroke(r.Styles.RadialDividerWidth, r.Styles.RadialDividerColor)
	for i := 0; i < NumSegments; i++ {
		surface.MoveTo(center.X, center.Y)
		edge := pointAt(center, radius, angle(float64(i)))
		surface.LineTo(edge.X, edge.Y)
	}
	surface.CloseStroke()

	// Inner rim.
	surface.OpenStroke(r.Styles.RimDividerWidth, r.Styles.RimDividerColor)
	surface.Arc(center.X, center.Y, innerRadius, angle(0), angle(NumSegments))
	surface.CloseStroke()

	// Outline.
	surface.OpenStroke(r.Styles.OutlineWidth, r.Styles.OutlineColor)
	surface.Arc(center.X, center.Y, radius, angle(0), angle(NumSegments))
	surface.CloseStroke()

	// Labels.
	for i := 0; i < NumSegments; i++ {
		label := params.Labels[i]
		if label == "" {
			continue
		}
		surface.DrawArcedText(label, r.Styles.slice(i).LabelColor, labelFontSize, r.Styles.FontFamily,
			center.X, center.Y, innerRadius+labelFontSize/3, angle(float64(i)+0.5))
	}
}

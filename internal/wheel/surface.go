package wheel

// Surface is the drawing target of the renderer. Angles are in radians, 0 points
// along +x and increasing angles turn clockwise on a y-down surface.
type Surface interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc from startAngle to endAngle (increasing).
	Arc(cx, cy, radius, startAngle, endAngle float64)

	OpenFilledShape(fill Color)
	CloseFilledShape()

	OpenStroke(width float64, color Color)
	CloseStroke()

	// DrawArcedText draws text centered on the point of the circle (cx, cy, radius)
	// at angle, rotated so that it reads along the rim.
	DrawArcedText(text string, color Color, size float64, fontFamily string, cx, cy, radius, angle float64)
}

// Call is one recorded Surface invocation.
type Call struct {
	Op    string
	Args  []float64
	Color Color
	Text  string
}

// Recorder is a Surface that keeps the sequence of calls made on it.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) Reset() { r.Calls = nil }

func (r *Recorder) MoveTo(x, y float64) {
	r.Calls = append(r.Calls, Call{Op: "moveTo", Args: []float64{x, y}})
}

func (r *Recorder) LineTo(x, y float64) {
	r.Calls = append(r.Calls, Call{Op: "lineTo", Args: []float64{x, y}})
}

func (r *Recorder) Arc(cx, cy, radius, startAngle, endAngle float64) {
	r.Calls = append(r.Calls, Call{Op: "arc", Args: []float64{cx, cy, radius, startAngle, endAngle}})
}

func (r *Recorder) OpenFilledShape(fill Color) {
	r.Calls = append(r.Calls, Call{Op: "openFilledShape", Color: fill})
}

func (r *Recorder) CloseFilledShape() {
	r.Calls = append(r.Calls, Call{Op: "closeFilledShape"})
}

func (r *Recorder) OpenStroke(width float64, color Color) {
	r.Calls = append(r.Calls, Call{Op: "openStroke", Args: []float64{width}, Color: color})
}

func (r *Recorder) CloseStroke() {
	r.Calls = append(r.Calls, Call{Op: "closeStroke"})
}

func (r *Recorder) DrawArcedText(text string, color Color, size float64, fontFamily string, cx, cy, radius, angle float64) {
	r.Calls = append(r.Calls, Call{Op: "drawArcedText", Args: []float64{size, cx, cy, radius, angle}, Color: color, Text: text})
}

// Ops returns only the operation names, in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

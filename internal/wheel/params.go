package wheel

import "math"

// Level is the interpolatable form of a Value: Amount animates, Known snaps.
type Level struct {
	Amount float64
	Known  bool
}

// LevelOf converts a rating into its render form.
func LevelOf(v Value) Level {
	if !v.Known {
		return Level{}
	}
	return Level{Amount: float64(v.N), Known: true}
}

// Clamped returns the amount limited to [0, MaxValue].
func (l Level) Clamped() float64 {
	return math.Max(0, math.Min(MaxValue, l.Amount))
}

// RenderParams is everything the renderer needs to draw one frame. Center, Radius,
// BaseAngle and the value amounts are numeric and get interpolated; fills, labels
// and the known flags are assigned directly.
type RenderParams struct {
	Fills     [NumSegments]Color
	Labels    [NumSegments]string
	Values    [NumSegments]Level
	Center    Point
	Radius    float64
	BaseAngle float64
}

// ParamsFor derives the at-rest render parameters of st on a canvas of the given size.
func ParamsFor(st State, width, height float64) RenderParams {
	pose := PoseFor(st.Placement, width, height)
	params := RenderParams{
		Center:    pose.Center,
		Radius:    pose.Radius,
		BaseAngle: BaseAngleForSection(st.CurrentSection),
	}
	for i := 0; i < NumSegments; i++ {
		params.Fills[i] = DefaultFills[i]
		if i < len(st.Fills) && st.Fills[i] != "" {
			params.Fills[i] = st.Fills[i]
		}
		if i < len(st.Labels) {
			params.Labels[i] = st.Labels[i]
		}
		if i < len(st.Values) {
			params.Values[i] = LevelOf(st.Values[i])
		}
	}
	return params
}

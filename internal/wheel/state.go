package wheel

import (
	"encoding/json"
	"strings"
)

// NumSegments is the fixed number of angular segments on a wheel.
const NumSegments = 8

// Color is a CSS-style color string ("#8cc", "#88ccff", "rgba(255,255,255,0.75)", "white").
type Color string

// DefaultFills is the fill palette of a fresh wheel.
var DefaultFills = [NumSegments]Color{
	"#8cc", "#abf", "#ff8", "#fc8", "#faa", "#c8c", "#8f8", "#dc9",
}

// Segment describes one slice of the wheel together with its colors.
type Segment struct {
	Label        string
	Value        Value
	Fill         Color
	NegativeFill Color
	LabelColor   Color
}

// Placement is a named at-rest pose of the wheel on the canvas.
type Placement int

const (
	Neutral Placement = iota
	Offstage
	CenterStage
	StageLeft
)

var placementNames = map[Placement]string{
	Neutral:     "neutral",
	Offstage:    "offstage",
	CenterStage: "center-stage",
	StageLeft:   "stage-left",
}

func (p Placement) String() string {
	if name, ok := placementNames[p]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether p is one of the four known placements.
func (p Placement) Valid() bool {
	_, ok := placementNames[p]
	return ok
}

// ParsePlacement accepts either a placement name or its numeric form.
func ParsePlacement(s string) (Placement, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range placementNames {
		if name == s || strings.ReplaceAll(name, "-", "_") == s {
			return p, true
		}
	}
	var n int
	if err := json.Unmarshal([]byte(s), &n); err == nil && Placement(n).Valid() {
		return Placement(n), true
	}
	return Neutral, false
}

// State is the persisted description of a wheel.
type State struct {
	Fills          []Color   `json:"fills"`
	Labels         []string  `json:"labels"`
	Values         []Value   `json:"values"`
	Placement      Placement `json:"placement"`
	CurrentSection int       `json:"currentSection"`
	Open           bool      `json:"open"`
	Visible        bool      `json:"visible"`
}

// DefaultState returns a hidden, unlabeled, unrated wheel in the neutral placement.
func DefaultState() State {
	st := State{}
	st.Normalize()
	return st
}

// Normalize fills in missing or malformed fields so that every slice has exactly
// NumSegments entries and the placement and section are in range.
func (st *State) Normalize() {
	fills := make([]Color, NumSegments)
	for i := range fills {
		if i < len(st.Fills) && st.Fills[i] != "" {
			fills[i] = st.Fills[i]
		} else {
			fills[i] = DefaultFills[i]
		}
	}
	st.Fills = fills

	labels := make([]string, NumSegments)
	copy(labels, st.Labels)
	st.Labels = labels

	values := make([]Value, NumSegments)
	copy(values, st.Values)
	st.Values = values

	if !st.Placement.Valid() {
		st.Placement = Neutral
	}
	st.CurrentSection = WrapSection(st.CurrentSection)
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	out := st
	out.Fills = append([]Color(nil), st.Fills...)
	out.Labels = append([]string(nil), st.Labels...)
	out.Values = append([]Value(nil), st.Values...)
	return out
}

// Segment returns segment i with the default styles applied.
func (st State) Segment(i int, styles Styles) Segment {
	seg := Segment{
		Fill:         DefaultFills[i%NumSegments],
		NegativeFill: styles.slice(i).NegativeFill,
		LabelColor:   styles.slice(i).LabelColor,
	}
	if i < len(st.Fills) {
		seg.Fill = st.Fills[i]
	}
	if i < len(st.Labels) {
		seg.Label = st.Labels[i]
	}
	if i < len(st.Values) {
		seg.Value = st.Values[i]
	}
	return seg
}

// UnmarshalJSON decodes field by field so that a malformed field falls back to its
// default instead of failing the whole record. Unknown fields are ignored.
func (st *State) UnmarshalJSON(data []byte) error {
	*st = State{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		st.Normalize()
		return nil
	}
	decode := func(key string, v any) {
		if raw, ok := fields[key]; ok {
			_ = json.Unmarshal(raw, v)
		}
	}

	var fills []*string
	decode("fills", &fills)
	for _, f := range fills {
		if f == nil {
			st.Fills = append(st.Fills, "")
			continue
		}
		st.Fills = append(st.Fills, Color(*f))
	}

	var labels []*string
	decode("labels", &labels)
	for _, l := range labels {
		if l == nil {
			st.Labels = append(st.Labels, "")
			continue
		}
		st.Labels = append(st.Labels, *l)
	}

	decode("values", &st.Values)

	var placement float64
	decode("placement", &placement)
	st.Placement = Placement(int(placement))

	var section float64
	decode("currentSection", &section)
	st.CurrentSection = int(section)

	decode("open", &st.Open)
	decode("visible", &st.Visible)

	st.Normalize()
	return nil
}

// WrapSection maps any integer onto a section index in [0, NumSegments).
func WrapSection(section int) int {
	section %= NumSegments
	if section < 0 {
		section += NumSegments
	}
	return section
}

package wheel

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want Value
	}{
		{"in range", 7, Value{N: 7, Known: true}},
		{"zero is known", 0, Value{N: 0, Known: true}},
		{"negative clamps to zero", -3, Value{N: 0, Known: true}},
		{"above ten clamps", 42, Value{N: 10, Known: true}},
		{"fraction floors", 5.7, Value{N: 5, Known: true}},
		{"NaN is unknown", math.NaN(), Unknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValueOf(tt.in))
		})
	}
}

func TestValueJSON(t *testing.T) {
	t.Parallel()

	var values []Value
	require.NoError(t, json.Unmarshal([]byte(`[3, null, "x", 15, -2, {"a":1}]`), &values))
	assert.Equal(t, []Value{
		{N: 3, Known: true}, Unknown, Unknown, {N: 10, Known: true}, {N: 0, Known: true}, Unknown,
	}, values)

	data, err := json.Marshal([]Value{{N: 4, Known: true}, Unknown})
	require.NoError(t, err)
	assert.JSONEq(t, `[4, null]`, string(data))
}

func TestStateUnmarshalToleratesMissingAndExtraFields(t *testing.T) {
	t.Parallel()

	var st State
	require.NoError(t, json.Unmarshal([]byte(`{"labels":["Health",null],"placement":"bogus","currentSection":11,"extra":{"x":1}}`), &st))

	assert.Len(t, st.Fills, NumSegments)
	assert.Equal(t, DefaultFills[3], st.Fills[3])
	assert.Equal(t, "Health", st.Labels[0])
	assert.Equal(t, "", st.Labels[1])
	assert.Len(t, st.Values, NumSegments)
	for _, v := range st.Values {
		assert.False(t, v.Known)
	}
	assert.Equal(t, Neutral, st.Placement)
	assert.Equal(t, 3, st.CurrentSection)
}

func TestStateUnmarshalGarbageFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	var st State
	require.NoError(t, json.Unmarshal([]byte(`[1,2,3]`), &st))
	assert.Equal(t, DefaultState(), st)
}

func TestStateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	st := DefaultState()
	st.Labels[2] = "Career"
	st.Values[2] = ValueOf(6)
	st.Placement = StageLeft
	st.CurrentSection = 5
	st.Visible = true

	data, err := json.Marshal(st)
	require.NoError(t, err)

	var back State
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, st, back)
}

func TestCloneDoesNotAlias(t *testing.T) {
	t.Parallel()

	st := DefaultState()
	cp := st.Clone()
	st.Labels[0] = "changed"
	st.Values[0] = ValueOf(3)
	assert.Equal(t, "", cp.Labels[0])
	assert.False(t, cp.Values[0].Known)
}

func TestBaseAngleForSectionPutsSectionAtTop(t *testing.T) {
	t.Parallel()

	top := 3 * math.Pi / 2
	for section := 0; section < NumSegments; section++ {
		base := BaseAngleForSection(section)
		assert.GreaterOrEqual(t, base, 0.0)
		assert.Less(t, base, 2*math.Pi)

		mid := math.Mod(SegmentAngle(base, float64(section)+0.5), 2*math.Pi)
		assert.InDelta(t, top, mid, 1e-9, "section %d", section)
	}
	assert.Equal(t, BaseAngleForSection(1), BaseAngleForSection(9))
}

func TestPoseFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Pose{Center: Point{X: 630, Y: 315}, Radius: 630 * 0.45}, PoseFor(Neutral, 1260, 630))
	assert.Equal(t, Pose{Center: Point{X: -210, Y: 630}, Radius: offstageRadius}, PoseFor(Offstage, 1260, 630))
	assert.Equal(t, Pose{Center: Point{X: 630, Y: 630}, Radius: 630}, PoseFor(CenterStage, 1260, 630))
	assert.Equal(t, Pose{Center: Point{X: 315, Y: 315}, Radius: 630 * 0.45}, PoseFor(StageLeft, 1260, 630))
}

type filledShape struct {
	color  Color
	radius float64
}

func filledShapes(calls []Call) []filledShape {
	var shapes []filledShape
	var open *filledShape
	for _, c := range calls {
		switch c.Op {
		case "openFilledShape":
			open = &filledShape{color: c.Color}
		case "arc":
			if open != nil {
				open.radius = c.Args[2]
			}
		case "closeFilledShape":
			shapes = append(shapes, *open)
			open = nil
		}
	}
	return shapes
}

func testParams() RenderParams {
	st := DefaultState()
	return ParamsFor(st, 1260, 630)
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	params := testParams()
	params.Labels[0] = "Health"
	params.Values[1] = LevelOf(ValueOf(4))

	r := NewRenderer()
	var first, second Recorder
	r.Render(params, &first)
	r.Render(params, &second)

	require.NotEmpty(t, first.Calls)
	if diff := cmp.Diff(first.Calls, second.Calls); diff != "" {
		t.Errorf("render calls differ (-first +second):\n%s", diff)
	}
}

func TestRenderSkipsDegenerateRadius(t *testing.T) {
	t.Parallel()

	params := testParams()
	params.Radius = 0.5

	var rec Recorder
	NewRenderer().Render(params, &rec)
	assert.Empty(t, rec.Calls)
}

func TestRenderPassOrder(t *testing.T) {
	t.Parallel()

	params := testParams()
	params.Values[0] = LevelOf(ValueOf(3))
	params.Labels[4] = "Fun"

	var rec Recorder
	NewRenderer().Render(params, &rec)

	shapes := filledShapes(rec.Calls)
	require.Len(t, shapes, 8+8+1)

	var strokes []Color
	var texts []string
	for _, c := range rec.Calls {
		switch c.Op {
		case "openStroke":
			strokes = append(strokes, c.Color)
		case "drawArcedText":
			texts = append(texts, c.Text)
		}
	}
	styles := DefaultStyles()
	assert.Equal(t, []Color{styles.RadialDividerColor, styles.RimDividerColor, styles.OutlineColor}, strokes)
	assert.Equal(t, []string{"Fun"}, texts)
	assert.Equal(t, "drawArcedText", rec.Calls[len(rec.Calls)-1].Op)
}

func TestRenderUnknownAndZeroAreDistinct(t *testing.T) {
	t.Parallel()

	params := testParams()
	params.Values[0] = LevelOf(ValueOf(0))

	var rec Recorder
	r := NewRenderer()
	r.Render(params, &rec)

	shapes := filledShapes(rec.Calls)
	require.Len(t, shapes, 16, "value 0 draws no satisfaction bar")
	assert.Equal(t, r.Styles.Slices[0].NegativeFill, shapes[8].color)
	assert.Equal(t, r.Styles.UnknownFill, shapes[9].color)
	assert.NotEqual(t, shapes[8].color, shapes[9].color)
}

func TestRenderScenarioUnknownThenHalf(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	params := testParams()

	var rec Recorder
	r.Render(params, &rec)
	shapes := filledShapes(rec.Calls)
	require.Len(t, shapes, 16)
	for i := 8; i < 16; i++ {
		assert.Equal(t, r.Styles.UnknownFill, shapes[i].color, "inner wedge %d", i-8)
	}

	params.Values[2] = LevelOf(ValueOf(5))
	rec.Reset()
	r.Render(params, &rec)
	shapes = filledShapes(rec.Calls)
	require.Len(t, shapes, 17)

	innerRadius := params.Radius - params.Radius/6 - r.Styles.RimDividerWidth
	for i := 8; i < 16; i++ {
		want := r.Styles.UnknownFill
		if i-8 == 2 {
			want = r.Styles.Slices[2].NegativeFill
		}
		assert.Equal(t, want, shapes[i].color, "inner wedge %d", i-8)
	}
	bar := shapes[16]
	assert.Equal(t, params.Fills[2], bar.color)
	assert.InDelta(t, innerRadius/2, bar.radius, 1e-9)
}

func TestRenderLabelPlacement(t *testing.T) {
	t.Parallel()

	params := testParams()
	params.Labels[1] = "Money"

	var rec Recorder
	r := NewRenderer()
	r.Render(params, &rec)

	last := rec.Calls[len(rec.Calls)-1]
	require.Equal(t, "drawArcedText", last.Op)

	size := LabelFontSize(params.Radius)
	assert.Equal(t, math.Floor(params.Radius/36)*4, size)
	innerRadius := params.Radius - params.Radius/6 - r.Styles.RimDividerWidth
	assert.Equal(t, []float64{size, params.Center.X, params.Center.Y, innerRadius + size/3, SegmentAngle(params.BaseAngle, 1.5)}, last.Args)
}

func TestParamsForCopiesState(t *testing.T) {
	t.Parallel()

	st := DefaultState()
	st.Labels[3] = "Home"
	params := ParamsFor(st, 100, 100)
	st.Labels[3] = "Away"
	assert.Equal(t, "Home", params.Labels[3])
}

package phases

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/lifewheel/internal/canvas"
	"github.com/rook-computer/lifewheel/internal/phase"
	"github.com/rook-computer/lifewheel/internal/state"
	"github.com/rook-computer/lifewheel/internal/ui"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

type testDisplay struct {
	wheel.Recorder
}

func (d *testDisplay) Size() (int, int) { return 1260, 630 }
func (d *testDisplay) Clear()           {}

type manualTimer struct {
	fn      func()
	repeat  bool
	stopped bool
}

func (t *manualTimer) Stop() { t.stopped = true }

type manualScheduler struct {
	timers []*manualTimer
}

func (s *manualScheduler) After(_ time.Duration, fn func()) phase.Timer {
	t := &manualTimer{fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) phase.Timer {
	t := &manualTimer{fn: fn, repeat: true}
	s.timers = append(s.timers, t)
	return t
}

// tick fires every live timer n times.
func (s *manualScheduler) tick(n int) {
	for i := 0; i < n; i++ {
		for _, t := range s.timers {
			if t.stopped {
				continue
			}
			t.fn()
			if !t.repeat {
				t.stopped = true
			}
		}
	}
}

type harness struct {
	t       *testing.T
	machine *phase.Machine
	wheel   *canvas.WheelCanvas
	layer   *ui.Layer
	sched   *manualScheduler
	storage state.Storage
}

func newHarness(t *testing.T, opts Options) *harness {
	h := &harness{
		t:       t,
		layer:   ui.NewLayer(),
		sched:   &manualScheduler{},
		storage: state.NewMemoryStorage(),
	}
	h.wheel = canvas.New(&testDisplay{}, canvas.Options{})
	h.machine = phase.NewMachine(phase.Options{
		Registry:  Registry(opts),
		Canvas:    h.wheel,
		Overlay:   h.layer,
		Scheduler: h.sched,
		Storage:   h.storage,
	})
	return h
}

// top returns the most recently attached overlay tree.
func (h *harness) top() *ui.Node {
	views := h.layer.Views()
	require.NotEmpty(h.t, views, "no overlay attached")
	return views[len(views)-1].Node
}

func (h *harness) find(kind ui.Kind, text string) *ui.Node {
	h.t.Helper()
	var found *ui.Node
	h.top().Walk(func(n *ui.Node) bool {
		if n.Kind == kind && (text == "" || n.Text == text) {
			found = n
			return false
		}
		return true
	})
	require.NotNil(h.t, found, "no %s %q", kind, text)
	return found
}

func (h *harness) click(kind ui.Kind, text string) {
	h.t.Helper()
	require.NoError(h.t, h.layer.Click(h.find(kind, text).ID))
}

func (h *harness) addArea(name string) {
	h.t.Helper()
	input := h.find(ui.KindTextInput, "")
	require.NoError(h.t, h.layer.Input(input.ID, name))
	require.NoError(h.t, h.layer.Submit(input.ID))
}

func TestRegistrySelectsFromState(t *testing.T) {
	r := Registry(Options{})
	assert.Equal(t, []string{Default, GetStarted, PreChooseAreas, ChooseAreas, ShowWheel, Freeform}, r.Names())

	tests := []struct {
		state phase.State
		want  string
	}{
		{phase.State{}, Default},
		{phase.State{KeyClicked: true}, GetStarted},
		{phase.State{KeyClicked: true, KeySelectedAreas: []any{}}, PreChooseAreas},
		{phase.State{KeySelectedAreas: []any{"Health"}}, ChooseAreas},
		{phase.State{KeySelectedAreas: []any{"Health"}, KeyWheel: map[string]any{}}, ShowWheel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Select(tt.state), "%v", tt.state)
	}
}

func TestDefaultClickStartsTour(t *testing.T) {
	h := newHarness(t, Options{})
	h.machine.Start("")
	require.Equal(t, Default, h.machine.Current())

	h.click(ui.KindText, "Click here.")
	assert.Equal(t, GetStarted, h.machine.Current())
	assert.True(t, h.machine.State().Truthy(KeyClicked))
}

func TestGetStartedAnimatesWheel(t *testing.T) {
	h := newHarness(t, Options{})
	h.machine.Start("")
	h.click(ui.KindText, "Click here.")

	st := h.wheel.State()
	assert.Equal(t, wheel.Offstage, st.Placement)
	assert.Equal(t, canvas.Slow, h.wheel.TransitionSpeed())
	assert.True(t, st.Visible)

	h.sched.tick(3)
	st = h.wheel.State()
	assert.Equal(t, wheel.Neutral, st.Placement)
	assert.Equal(t, 6, st.CurrentSection)
	assert.Equal(t, wheel.ValueOf(10), st.Values[0])
	assert.Equal(t, wheel.ValueOf(0), st.Values[1])

	h.sched.tick(8)
	st = h.wheel.State()
	assert.Equal(t, wheel.CenterStage, st.Placement)
	for i, v := range st.Values {
		assert.Equal(t, wheel.ValueOf(10), v, "segment %d", i)
	}
	if diff := cmp.Diff([]string{"", "", "", "", "", "Wheel", "of", "Life"}, st.Labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	h.find(ui.KindButton, "Get Started!")
}

func TestGetStartedWithoutAnimation(t *testing.T) {
	h := newHarness(t, Options{})
	h.machine.AssignState(phase.State{KeyClicked: true})
	h.machine.Start("")
	require.Equal(t, GetStarted, h.machine.Current())

	st := h.wheel.State()
	assert.Equal(t, wheel.CenterStage, st.Placement)
	assert.True(t, st.Visible)
	assert.Equal(t, "Life", st.Labels[7])
	assert.Empty(t, h.sched.timers)

	h.click(ui.KindButton, "Get Started!")
	assert.Equal(t, PreChooseAreas, h.machine.Current())
	st = h.wheel.State()
	assert.Equal(t, wheel.Offstage, st.Placement)
	assert.Equal(t, canvas.Fast, h.wheel.TransitionSpeed())
	assert.Equal(t, "", st.Labels[7])
	assert.True(t, h.machine.State().Has(KeySelectedAreas))
	assert.Empty(t, h.machine.State().Strings(KeySelectedAreas))

	h.click(ui.KindButton, "OK")
	assert.Equal(t, ChooseAreas, h.machine.Current())
}

func TestChooseAreas(t *testing.T) {
	h := newHarness(t, Options{})
	h.machine.Start(ChooseAreas)
	require.Equal(t, ChooseAreas, h.machine.Current())

	add := h.find(ui.KindButton, "Add")
	assert.True(t, add.Disabled)
	count := h.find(ui.KindText, "8")

	h.addArea("  Health ")
	h.addArea("Health")
	h.addArea("")
	assert.Equal(t, []string{"Health"}, h.machine.State().Strings(KeySelectedAreas))
	assert.Equal(t, "7", count.Text)
	h.find(ui.KindText, "Health")

	h.click(ui.KindButton, "Career")
	assert.Equal(t, "Career", h.find(ui.KindTextInput, "").Value)
	assert.False(t, add.Disabled)
	h.click(ui.KindButton, "Add")
	assert.Equal(t, []string{"Health", "Career"}, h.machine.State().Strings(KeySelectedAreas))

	h.click(ui.KindButton, "X")
	assert.Equal(t, []string{"Career"}, h.machine.State().Strings(KeySelectedAreas))
	assert.Equal(t, "7", count.Text)

	advance := h.find(ui.KindButton, "I'm good with these!")
	assert.False(t, advance.Active())
	for _, area := range []string{"Family", "Money", "Friends", "Fun", "Home", "Studies", "Love"} {
		h.addArea(area)
	}
	assert.Equal(t, "0", count.Text)
	assert.True(t, advance.Active())
	assert.False(t, h.find(ui.KindTextInput, "").Active())

	h.click(ui.KindButton, "I'm good with these!")
	assert.Equal(t, ShowWheel, h.machine.Current())

	var stored wheel.State
	require.NoError(t, h.machine.State().Decode(KeyWheel, &stored))
	want := []string{"Career", "Family", "Money", "Friends", "Fun", "Home", "Studies", "Love"}
	if diff := cmp.Diff(want, stored.Labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	for _, v := range stored.Values {
		assert.False(t, v.Known)
	}
}

func TestChooseAreasRestoresSelections(t *testing.T) {
	h := newHarness(t, Options{})
	h.machine.AssignState(phase.State{KeySelectedAreas: []string{"Health", "Fun"}})
	h.machine.Start("")
	require.Equal(t, ChooseAreas, h.machine.Current())

	h.find(ui.KindText, "Fun")
	h.find(ui.KindText, "6")
}

func TestChooseAreasFinishWithButtonsOnly(t *testing.T) {
	h := newHarness(t, Options{})
	areas := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	h.machine.AssignState(phase.State{KeySelectedAreas: areas})
	h.machine.Start("")
	require.Equal(t, ChooseAreas, h.machine.Current())

	var seen []string
	n := h.layer.Focused()
	for i := 0; i < 64 && n != nil && n.Text != "I'm good with these!"; i++ {
		seen = append(seen, n.Text)
		n = h.layer.MoveFocus(1)
	}
	require.NotNil(t, n)
	require.Equal(t, "I'm good with these!", n.Text, "focus order: %v", seen)
	assert.NotContains(t, seen, "Add", "the hidden input row is skipped")

	require.NoError(t, h.layer.Activate())
	assert.Equal(t, ShowWheel, h.machine.Current())
}

func showWheelHarness(t *testing.T, opts Options) *harness {
	h := newHarness(t, opts)
	st := wheel.DefaultState()
	copy(st.Labels, []string{"a", "b", "c", "d", "e", "f", "g", "h"})
	h.machine.AssignState(phase.State{KeySelectedAreas: st.Labels, KeyWheel: st})
	h.machine.Start("")
	require.Equal(t, ShowWheel, h.machine.Current())
	return h
}

func TestShowWheelRating(t *testing.T) {
	h := showWheelHarness(t, Options{})

	st := h.wheel.State()
	assert.Equal(t, wheel.StageLeft, st.Placement)
	assert.Equal(t, 0, st.CurrentSection)
	assert.True(t, st.Visible)

	label := h.find(ui.KindText, "a")
	picker := h.find(ui.KindNumberInput, "")
	next := h.find(ui.KindButton, "Next >")
	assert.False(t, next.Active())

	for i := 0; i < wheel.NumSegments; i++ {
		require.NoError(t, h.layer.Change(picker.ID, "7"))
		assert.Equal(t, wheel.ValueOf(7), h.wheel.State().Values[h.wheel.State().CurrentSection])
		if i == wheel.NumSegments-1 {
			break
		}
		assert.False(t, next.Active())
		h.click(ui.KindButton, "►")
		assert.Equal(t, 0.0, picker.Number)
	}
	h.click(ui.KindButton, "►")
	assert.True(t, next.Active())
	assert.Equal(t, "a", label.Text)

	h.click(ui.KindButton, "◄")
	assert.Equal(t, "h", label.Text)
	assert.Equal(t, 7, h.wheel.State().CurrentSection)
	assert.Equal(t, 7.0, picker.Number)

	var stored wheel.State
	require.NoError(t, h.machine.State().Decode(KeyWheel, &stored))
	assert.Equal(t, wheel.ValueOf(7), stored.Values[3])

	h.click(ui.KindButton, "Next >")
	assert.Equal(t, Freeform, h.machine.Current())
	h.find(ui.KindText, "That's all for this demo!")
}

func TestShowWheelAnimatedIntro(t *testing.T) {
	h := newHarness(t, Options{})
	st := wheel.DefaultState()
	h.machine.AssignState(phase.State{KeySelectedAreas: []string{"a"}, KeyWheel: st})
	h.machine.Start(ChooseAreas)
	h.machine.Advance(ShowWheel)

	assert.Equal(t, wheel.Offstage, h.wheel.State().Placement)
	h.sched.tick(2)
	assert.Equal(t, 4, h.wheel.State().CurrentSection)
	h.sched.tick(5)
	assert.Equal(t, wheel.StageLeft, h.wheel.State().Placement)
	assert.Equal(t, 0, h.wheel.State().CurrentSection)
	h.sched.tick(2)
	h.find(ui.KindNumberInput, "")
}

func TestFreeformShowsLink(t *testing.T) {
	h := newHarness(t, Options{LinkBase: "http://192.168.1.20:8080"})
	h.machine.Start(Freeform)
	h.find(ui.KindImage, "")

	h = newHarness(t, Options{})
	h.machine.Start(Freeform)
	found := false
	h.top().Walk(func(n *ui.Node) bool {
		found = found || n.Kind == ui.KindImage
		return true
	})
	assert.False(t, found)
}

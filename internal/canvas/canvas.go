// Package canvas animates a wheel: it owns the wheel state, eases the displayed
// render parameters toward the latest target and repaints a Display each frame.
package canvas

import (
	"errors"

	"github.com/rook-computer/lifewheel/internal/state"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

// DefaultStorageKey is the record under which the wheel state is persisted.
const DefaultStorageKey = "wheel"

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Display is the surface a WheelCanvas paints on.
type Display interface {
	wheel.Surface
	Size() (width int, height int)
	Clear()
}

type Options struct {
	Renderer   *wheel.Renderer
	Storage    state.Storage
	StorageKey string
	Logger     Logger
	// OnArm is called whenever a mutation wakes an idle animation.
	OnArm func()
}

// WheelCanvas maintains the state of one wheel and its animated rendering.
// It is not safe for concurrent use; the host serializes calls.
type WheelCanvas struct {
	display  Display
	renderer *wheel.Renderer
	storage  state.Storage
	key      string
	logger   Logger
	onArm    func()

	state   wheel.State
	speed   Speed
	target  wheel.RenderParams
	current *wheel.RenderParams
	running bool
}

// New creates a canvas with a default wheel, or the wheel restored from storage.
func New(display Display, opts Options) *WheelCanvas {
	c := &WheelCanvas{
		display:  display,
		renderer: opts.Renderer,
		storage:  opts.Storage,
		key:      opts.StorageKey,
		logger:   opts.Logger,
		onArm:    opts.OnArm,
		state:    wheel.DefaultState(),
		speed:    Medium,
	}
	if c.renderer == nil {
		c.renderer = wheel.NewRenderer()
	}
	if c.key == "" {
		c.key = DefaultStorageKey
	}
	c.restore()
	c.target = c.params()
	return c
}

// SetOnArm replaces the arm callback.
func (c *WheelCanvas) SetOnArm(fn func()) { c.onArm = fn }

// State returns a copy of the wheel state.
func (c *WheelCanvas) State() wheel.State { return c.state.Clone() }

// SetState replaces the whole wheel state without animating.
func (c *WheelCanvas) SetState(st wheel.State) {
	st = st.Clone()
	st.Normalize()
	c.state = st
	c.target = c.params()
	if c.current != nil {
		snapped := c.target
		c.current = &snapped
	}
	c.save()
	c.arm()
}

func (c *WheelCanvas) SetVisible(visible bool) {
	if c.state.Visible == visible {
		return
	}
	c.state.Visible = visible
	c.changed()
}

func (c *WheelCanvas) SetLabel(index int, label string) {
	i, ok := segmentIndex(index)
	if !ok || c.state.Labels[i] == label {
		return
	}
	c.state.Labels[i] = label
	c.changed()
}

func (c *WheelCanvas) SetValue(index int, value wheel.Value) {
	i, ok := segmentIndex(index)
	if !ok {
		return
	}
	if value.Known {
		value = wheel.ValueOf(float64(value.N))
	}
	if c.state.Values[i] == value {
		return
	}
	c.state.Values[i] = value
	c.changed()
}

func (c *WheelCanvas) SetPlacement(placement wheel.Placement) {
	if !placement.Valid() {
		placement = wheel.Neutral
	}
	if c.state.Placement == placement {
		return
	}
	c.state.Placement = placement
	c.changed()
}

func (c *WheelCanvas) SetCurrentSection(section int) {
	section = wheel.WrapSection(section)
	if c.state.CurrentSection == section {
		return
	}
	c.state.CurrentSection = section
	c.changed()
}

func (c *WheelCanvas) SetOpen(open bool) {
	if c.state.Open == open {
		return
	}
	c.state.Open = open
	c.changed()
}

// SetTransitionSpeed changes the decay used by subsequent frames, including the
// transition already in flight.
func (c *WheelCanvas) SetTransitionSpeed(speed Speed) { c.speed = speed }

func (c *WheelCanvas) TransitionSpeed() Speed { return c.speed }

// Metrics returns the at-rest pose of the current placement.
func (c *WheelCanvas) Metrics() wheel.Pose {
	w, h := c.display.Size()
	return wheel.PoseFor(c.state.Placement, float64(w), float64(h))
}

// Target returns the render parameters the animation is heading for.
func (c *WheelCanvas) Target() wheel.RenderParams { return c.target }

// Displayed returns the parameters of the last painted frame, if any.
func (c *WheelCanvas) Displayed() (wheel.RenderParams, bool) {
	if c.current == nil {
		return wheel.RenderParams{}, false
	}
	return *c.current, true
}

// Animating reports whether the host should keep delivering frames.
func (c *WheelCanvas) Animating() bool { return c.running }

// Tick advances the animation by elapsedMillis, repaints and reports whether
// another frame is needed.
func (c *WheelCanvas) Tick(elapsedMillis float64) bool {
	c.display.Clear()
	if !c.state.Visible {
		c.current = nil
		c.running = false
		return false
	}
	if c.current == nil {
		first := c.target
		c.current = &first
	}
	more := approach(c.current, c.target, c.speed.Decay(), elapsedMillis)
	c.renderer.Render(*c.current, c.display)
	c.running = more
	return more
}

// Repaint redraws the displayed frame without advancing the animation.
func (c *WheelCanvas) Repaint() {
	c.display.Clear()
	if !c.state.Visible || c.current == nil {
		return
	}
	c.renderer.Render(*c.current, c.display)
}

func (c *WheelCanvas) params() wheel.RenderParams {
	w, h := c.display.Size()
	return wheel.ParamsFor(c.state, float64(w), float64(h))
}

func (c *WheelCanvas) changed() {
	c.target = c.params()
	c.save()
	c.arm()
}

func (c *WheelCanvas) arm() {
	if c.running {
		return
	}
	c.running = true
	if c.onArm != nil {
		c.onArm()
	}
}

func (c *WheelCanvas) restore() {
	if c.storage == nil {
		return
	}
	var st wheel.State
	err := state.LoadJSON(c.storage, c.key, &st)
	switch {
	case err == nil:
		c.state = st
	case errors.Is(err, state.ErrNotFound):
	default:
		c.logf("restore %q failed, using defaults: %v", c.key, err)
	}
}

func (c *WheelCanvas) save() {
	if c.storage == nil {
		return
	}
	if err := state.SaveJSON(c.storage, c.key, c.state); err != nil {
		c.logf("save %q failed: %v", c.key, err)
	}
}

func (c *WheelCanvas) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Errorf("canvas", format, args...)
	}
}

// segmentIndex clamps indices past the end onto the last segment and rejects
// negative ones.
func segmentIndex(index int) (int, bool) {
	if index < 0 {
		return 0, false
	}
	if index >= wheel.NumSegments {
		return wheel.NumSegments - 1, true
	}
	return index, true
}

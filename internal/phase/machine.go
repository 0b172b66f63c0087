package phase

import (
	"errors"
	"time"

	"github.com/rook-computer/lifewheel/internal/canvas"
	"github.com/rook-computer/lifewheel/internal/state"
	"github.com/rook-computer/lifewheel/internal/ui"
)

// DefaultStorageKey is the record holding the PhaseState.
const DefaultStorageKey = "phase"

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Overlay is where phases put their UI.
type Overlay interface {
	Attach(n *ui.Node, fade bool)
	FadeOutAll()
}

type Timer interface {
	Stop()
}

// Scheduler runs callbacks later on the goroutine that owns the machine.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

type Options struct {
	Registry   *Registry
	Canvas     *canvas.WheelCanvas
	Overlay    Overlay
	Scheduler  Scheduler
	Storage    state.Storage
	StorageKey string
	Logger     Logger
	// OnEnter is called with the phase name each time a phase is opened.
	OnEnter func(name string)
}

// Machine owns the PhaseState and the single connected controller.
type Machine struct {
	registry  *Registry
	canvas    *canvas.WheelCanvas
	overlay   Overlay
	scheduler Scheduler
	storage   state.Storage
	key       string
	logger    Logger
	onEnter   func(string)

	state      State
	stage      *Stage
	controller Controller
}

func NewMachine(opts Options) *Machine {
	m := &Machine{
		registry:  opts.Registry,
		canvas:    opts.Canvas,
		overlay:   opts.Overlay,
		scheduler: opts.Scheduler,
		storage:   opts.Storage,
		key:       opts.StorageKey,
		logger:    opts.Logger,
		onEnter:   opts.OnEnter,
		state:     defaultState(),
	}
	if m.registry == nil {
		m.registry = NewRegistry()
	}
	if m.key == "" {
		m.key = DefaultStorageKey
	}
	if m.logger == nil {
		m.logger = noopLogger{}
	}
	return m
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

func defaultState() State {
	return State{NameKey: DefaultPhase}
}

func (m *Machine) Registry() *Registry { return m.registry }

// Current returns the name of the connected phase, or "" before Start.
func (m *Machine) Current() string {
	if m.stage == nil {
		return ""
	}
	return m.stage.name
}

// State returns a copy of the PhaseState.
func (m *Machine) State() State { return m.state.Clone() }

// Start restores the PhaseState and opens a phase without animation: the
// requested one when it is registered, otherwise the highest priority phase
// accepting the restored state. Calling Start again restarts from storage.
func (m *Machine) Start(requested string) {
	m.leave()
	m.state = m.load()

	name := requested
	if name != "" && !m.registry.Has(name) {
		m.infof("requested phase %q is not registered, selecting from state", name)
		name = ""
	}
	if name == "" {
		name = m.registry.Select(m.state)
	}
	def := m.registry.Lookup(name)
	m.state[NameKey] = name
	m.save()
	m.open(def, false)
}

// Reset forgets the PhaseState and reopens the default phase.
func (m *Machine) Reset() {
	m.leave()
	if m.storage != nil {
		if err := m.storage.Delete(m.key); err != nil {
			m.errorf("delete %q: %v", m.key, err)
		}
	}
	m.state = defaultState()
	m.open(m.registry.Lookup(m.registry.Select(m.state)), false)
}

// Restore replaces the PhaseState with st and reopens the phase it selects,
// without animation.
func (m *Machine) Restore(st State) {
	m.leave()
	m.state = st.Clone()
	if m.state == nil {
		m.state = defaultState()
	}
	name := m.registry.Select(m.state)
	m.state[NameKey] = name
	m.save()
	m.open(m.registry.Lookup(name), false)
}

// Advance leaves the current phase and opens name with animation. Advancing to
// an unregistered phase panics.
func (m *Machine) Advance(name string) {
	def := m.registry.Lookup(name)
	m.leave()
	m.state[NameKey] = name
	m.save()
	m.open(def, true)
}

// AssignState merges partial into the PhaseState and persists it.
func (m *Machine) AssignState(partial State) {
	m.state.Assign(partial)
	m.save()
}

func (m *Machine) leave() {
	if m.stage == nil {
		return
	}
	m.stage.close()
	if d, ok := m.controller.(Disconnecter); ok {
		d.Disconnect()
	}
	if m.overlay != nil {
		m.overlay.FadeOutAll()
	}
	m.stage = nil
	m.controller = nil
}

func (m *Machine) open(def Definition, animate bool) {
	stage := &Stage{machine: m, name: def.Name, animate: animate}
	m.stage = stage
	m.controller = def.New(stage)
	m.infof("entering %s (animate=%t)", def.Name, animate)
	if m.onEnter != nil {
		m.onEnter(def.Name)
	}
	m.controller.Connect(animate)
}

func (m *Machine) load() State {
	if m.storage == nil {
		return defaultState()
	}
	var st State
	err := state.LoadJSON(m.storage, m.key, &st)
	switch {
	case err == nil && st != nil:
		return st
	case err == nil, errors.Is(err, state.ErrNotFound):
	default:
		m.errorf("restore %q failed, starting over: %v", m.key, err)
	}
	return defaultState()
}

func (m *Machine) save() {
	if m.storage == nil {
		return
	}
	if err := state.SaveJSON(m.storage, m.key, m.state); err != nil {
		m.errorf("save %q failed: %v", m.key, err)
	}
}

func (m *Machine) infof(format string, args ...interface{}) {
	m.logger.Infof("phase", format, args...)
}

func (m *Machine) errorf(format string, args ...interface{}) {
	m.logger.Errorf("phase", format, args...)
}

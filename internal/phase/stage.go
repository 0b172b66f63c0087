package phase

import (
	"time"

	"github.com/rook-computer/lifewheel/internal/canvas"
	"github.com/rook-computer/lifewheel/internal/ui"
)

// Stage is the context a controller works through. It is only valid while its
// phase is connected; afterwards its timers are stopped and calls are ignored.
type Stage struct {
	machine *Machine
	name    string
	animate bool
	closed  bool
	timers  []Timer
}

func (s *Stage) Name() string { return s.name }

// Animated reports whether the phase was opened with animation.
func (s *Stage) Animated() bool { return s.animate }

// Active reports whether the phase is still connected.
func (s *Stage) Active() bool { return !s.closed }

func (s *Stage) Canvas() *canvas.WheelCanvas { return s.machine.canvas }

// State returns a copy of the PhaseState.
func (s *Stage) State() State { return s.machine.State() }

func (s *Stage) AssignState(partial State) {
	if s.closed {
		s.machine.infof("%s: ignoring state change after leaving", s.name)
		return
	}
	s.machine.AssignState(partial)
}

// Advance moves the conversation on to the named phase.
func (s *Stage) Advance(name string) {
	if s.closed {
		s.machine.infof("%s: ignoring advance to %s after leaving", s.name, name)
		return
	}
	s.machine.Advance(name)
}

// IntroduceOverlayContent shows n above the wheel, fading it in when the phase
// was opened with animation.
func (s *Stage) IntroduceOverlayContent(n *ui.Node) {
	if s.closed || s.machine.overlay == nil {
		return
	}
	s.machine.overlay.Attach(n, s.animate)
}

// After runs fn once after d unless the phase has been left.
func (s *Stage) After(d time.Duration, fn func()) Timer {
	return s.schedule(d, fn, false)
}

// Every runs fn every d until stopped or the phase is left.
func (s *Stage) Every(d time.Duration, fn func()) Timer {
	return s.schedule(d, fn, true)
}

func (s *Stage) schedule(d time.Duration, fn func(), repeat bool) Timer {
	guarded := func() {
		if !s.closed {
			fn()
		}
	}
	var t Timer
	switch {
	case s.closed || s.machine.scheduler == nil:
		t = stoppedTimer{}
	case repeat:
		t = s.machine.scheduler.Every(d, guarded)
	default:
		t = s.machine.scheduler.After(d, guarded)
	}
	s.timers = append(s.timers, t)
	return t
}

func (s *Stage) Logger() Logger { return s.machine.logger }

func (s *Stage) close() {
	s.closed = true
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() {}

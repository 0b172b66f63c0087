package canvas

import "time"

// Animation is anything driven by elapsed time until it settles.
type Animation interface {
	Tick(elapsedMillis float64) bool
	Animating() bool
}

// Loop turns host frame timestamps into elapsed times for an Animation. The first
// frame after the animation is armed only records the timestamp, so a stale
// timestamp from a previous run never produces a jump.
type Loop struct {
	anim   Animation
	last   time.Time
	primed bool
}

func NewLoop(anim Animation) *Loop { return &Loop{anim: anim} }

// Armed reports whether the loop wants frames.
func (l *Loop) Armed() bool { return l.anim.Animating() }

// Frame handles one host frame and reports whether the animation was ticked.
func (l *Loop) Frame(now time.Time) bool {
	if !l.anim.Animating() {
		l.primed = false
		return false
	}
	if !l.primed {
		l.primed = true
		l.last = now
		return false
	}
	elapsed := float64(now.Sub(l.last)) / float64(time.Millisecond)
	l.last = now
	if !l.anim.Tick(elapsed) {
		l.primed = false
	}
	return true
}

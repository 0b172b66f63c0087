package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/lifewheel/internal/phase"
)

// loopTimer fires its callback on the app goroutine. Stop is final: a tick
// already queued when Stop is called does not run.
type loopTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() {
	t.stopped.Store(true)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *loopTimer) arm(d time.Duration, fire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped.Load() {
		return
	}
	t.timer = time.AfterFunc(d, fire)
}

// After runs fn once on the app goroutine after d.
func (app *App) After(d time.Duration, fn func()) phase.Timer {
	t := &loopTimer{}
	t.arm(d, func() {
		app.Post(func() {
			if !t.stopped.Load() {
				t.stopped.Store(true)
				fn()
			}
		})
	})
	return t
}

// Every runs fn on the app goroutine every d until stopped. The next tick is
// scheduled after fn returns, so ticks never pile up behind a busy loop.
func (app *App) Every(d time.Duration, fn func()) phase.Timer {
	t := &loopTimer{}
	var fire func()
	fire = func() {
		app.Post(func() {
			if t.stopped.Load() {
				return
			}
			fn()
			t.arm(d, fire)
		})
	}
	t.arm(d, fire)
	return t
}

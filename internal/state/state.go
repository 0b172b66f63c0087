package state

import (
	"sync"
	"time"
)

// Status is the runtime snapshot shared with goroutines outside the app loop.
type Status struct {
	Phase     string    `json:"phase"`
	Placement string    `json:"placement"`
	Animating bool      `json:"animating"`
	Frames    int64     `json:"frames"`
	Overlay   int       `json:"overlay"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store struct {
	mu     sync.RWMutex
	status Status
}

func NewStore() *Store {
	return &Store{status: Status{Phase: "default"}}
}

func (store *Store) Snapshot() Status {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.status
}

func (store *Store) SetPhase(phase string) {
	store.mu.Lock()
	store.status.Phase = phase
	store.status.UpdatedAt = time.Now()
	store.mu.Unlock()
}

// UpdateFrame records the outcome of one frame of the app loop.
func (store *Store) UpdateFrame(placement string, animating bool, overlay int) {
	store.mu.Lock()
	store.status.Placement = placement
	store.status.Animating = animating
	store.status.Overlay = overlay
	store.status.Frames++
	store.status.UpdatedAt = time.Now()
	store.mu.Unlock()
}

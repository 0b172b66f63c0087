package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/rook-computer/lifewheel/internal/app"
	"github.com/rook-computer/lifewheel/internal/app/phases"
	"github.com/rook-computer/lifewheel/internal/phase"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

var sampleAreas = []string{"Career", "Money", "Health", "Friends", "Family", "Love", "Fun", "Home"}

var sampleRatings = []int{7, 4, 8, 6, 9, 5, 3, 7}

// Scenario is a seeded point in the conversation.
type Scenario struct {
	Phase phase.State
	Wheel wheel.State
}

var scenarios = map[string]func() Scenario{
	// fresh starts at the invitation screen.
	"fresh": func() Scenario {
		return Scenario{Phase: phase.State{}, Wheel: wheel.DefaultState()}
	},
	// areas has all areas chosen and waits for the user to confirm them.
	"areas": func() Scenario {
		return Scenario{
			Phase: phase.State{phases.KeyClicked: true, phases.KeySelectedAreas: sampleAreas},
			Wheel: wheel.DefaultState(),
		}
	},
	// rated has a complete wheel on the rating screen.
	"rated": func() Scenario {
		st := wheel.DefaultState()
		st.Visible = true
		for i := range st.Labels {
			st.Labels[i] = sampleAreas[i]
			st.Values[i] = wheel.ValueOf(float64(sampleRatings[i]))
		}
		return Scenario{
			Phase: phase.State{phases.KeyClicked: true, phases.KeySelectedAreas: sampleAreas, phases.KeyWheel: st},
			Wheel: st,
		}
	},
}

func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type SimControl struct {
	app             *app.App
	startupScenario string

	mu      sync.Mutex
	current string
}

func NewSimControl(a *app.App, startupScenario string) *SimControl {
	startupScenario = strings.TrimSpace(startupScenario)
	if startupScenario == "" {
		startupScenario = "fresh"
	}
	return &SimControl{app: a, startupScenario: startupScenario}
}

// Apply seeds the app with the named scenario.
func (c *SimControl) Apply(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.startupScenario
	}
	build, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q (known: %v)", name, ScenarioNames())
	}
	s := build()
	if err := c.app.Restore(ctx, s.Phase, s.Wheel); err != nil {
		return err
	}
	c.mu.Lock()
	c.current = name
	c.mu.Unlock()
	return nil
}

func (c *SimControl) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/scenarios", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"scenarios": ScenarioNames(), "current": control.Current()})
	})

	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Apply(r.Context(), ""); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Current()})
	})

	mux.HandleFunc("/sim/scenario/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/scenario/"), "/")
		if err := control.Apply(r.Context(), name); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Current()})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}

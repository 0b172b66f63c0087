package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/lifewheel/internal/app"
	"github.com/rook-computer/lifewheel/internal/app/phases"
	"github.com/rook-computer/lifewheel/internal/render"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

func startSimApp(t *testing.T) *app.App {
	a := app.New(app.Options{
		Renderer:      render.NewImageRenderer(),
		Registry:      phases.Registry(phases.Options{}),
		FrameInterval: 2 * time.Millisecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = a.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return a
}

func TestScenarios(t *testing.T) {
	a := startSimApp(t)
	control := NewSimControl(a, "")
	ctx := context.Background()

	tests := []struct {
		scenario string
		phase    string
	}{
		{"rated", phases.ShowWheel},
		{"areas", phases.ChooseAreas},
		{"fresh", phases.Default},
	}
	for _, tt := range tests {
		require.NoError(t, control.Apply(ctx, tt.scenario))
		info, err := a.Phase(ctx)
		require.NoError(t, err)
		assert.Equal(t, tt.phase, info.Current, tt.scenario)
		assert.Equal(t, tt.scenario, control.Current())
	}

	require.NoError(t, control.Apply(ctx, "rated"))
	st, err := a.WheelState(ctx)
	require.NoError(t, err)
	assert.Equal(t, wheel.ValueOf(8), st.Values[2])
	assert.Equal(t, "Health", st.Labels[2])

	assert.Error(t, control.Apply(ctx, "nope"))
}

func TestSimEndpoints(t *testing.T) {
	a := startSimApp(t)
	mux := http.NewServeMux()
	registerSimEndpoints(mux, NewSimControl(a, "areas"))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res, err := srv.Client().Post(srv.URL+"/sim/reset", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, phases.ChooseAreas, a.Status().Phase)

	res, err = srv.Client().Post(srv.URL+"/sim/scenario/unknown", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, err = srv.Client().Get(srv.URL + "/sim/scenarios")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

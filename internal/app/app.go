// Package app hosts the wheel, the overlay and the phase machine on a single
// goroutine and pumps frames to the renderer while something animates.
package app

import (
	"context"
	"errors"
	"image"
	"io"
	"sync/atomic"
	"time"

	"github.com/rook-computer/lifewheel/internal/buttons"
	"github.com/rook-computer/lifewheel/internal/canvas"
	"github.com/rook-computer/lifewheel/internal/phase"
	"github.com/rook-computer/lifewheel/internal/render"
	"github.com/rook-computer/lifewheel/internal/state"
	"github.com/rook-computer/lifewheel/internal/system"
	"github.com/rook-computer/lifewheel/internal/ui"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

// DefaultFrameInterval paces frames while an animation runs.
const DefaultFrameInterval = time.Second / 60

var (
	ErrStopped       = errors.New("app is not running")
	ErrUnknownPhase  = errors.New("unknown phase")
	ErrUnknownAction = errors.New("unknown input action")
)

type Options struct {
	Width, Height int
	Renderer      render.Renderer
	Storage       state.Storage
	// Registry must contain the default phase.
	Registry      *phase.Registry
	Buttons       buttons.Buttons
	Store         *state.Store
	Logger        Logger
	Fonts         *render.Fonts
	StartPhase    string
	FrameInterval time.Duration
	// Console switches the active VT to graphics mode while running.
	Console bool
}

type App struct {
	Store   *state.Store
	Render  render.Renderer
	Buttons buttons.Buttons
	Logger  Logger

	console       bool
	startPhase    string
	frameInterval time.Duration
	registry      *phase.Registry

	fonts       *render.Fonts
	surface     *render.RasterSurface
	canvas      *canvas.WheelCanvas
	layer       *ui.Layer
	machine     *phase.Machine
	painter     render.OverlayPainter
	wheelLoop   *canvas.Loop
	overlayLoop *canvas.Loop

	dirty        bool
	focusVisible bool

	events  chan func()
	done    chan struct{}
	running atomic.Bool

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(opts Options) *App {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = render.CanvasWidth, render.CanvasHeight
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger{}
	}
	if opts.Store == nil {
		opts.Store = state.NewStore()
	}
	if opts.Renderer == nil {
		opts.Renderer = &render.NoopRenderer{}
	}
	if opts.Buttons == nil {
		opts.Buttons = buttons.NewNoopButtons()
	}
	if opts.Registry == nil {
		opts.Registry = phase.NewRegistry()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Fonts == nil {
		opts.Fonts = render.LoadFonts(opts.Logger)
	}

	app := &App{
		Store:         opts.Store,
		Render:        opts.Renderer,
		Buttons:       opts.Buttons,
		Logger:        opts.Logger,
		console:       opts.Console,
		startPhase:    opts.StartPhase,
		frameInterval: opts.FrameInterval,
		registry:      opts.Registry,
		fonts:         opts.Fonts,
		events:        make(chan func(), 64),
		done:          make(chan struct{}),
		exitCh:        make(chan error, 1),
	}
	app.surface = render.NewRasterSurface(opts.Width, opts.Height, opts.Fonts, opts.Logger)
	app.canvas = canvas.New(app.surface, canvas.Options{
		Storage: opts.Storage,
		Logger:  opts.Logger,
		OnArm:   func() { app.dirty = true },
	})
	app.layer = ui.NewLayer()
	app.wheelLoop = canvas.NewLoop(app.canvas)
	app.overlayLoop = canvas.NewLoop(app.layer)
	app.machine = phase.NewMachine(phase.Options{
		Registry:  opts.Registry,
		Canvas:    app.canvas,
		Overlay:   app.layer,
		Scheduler: app,
		Storage:   opts.Storage,
		Logger:    opts.Logger,
		OnEnter:   app.Store.SetPhase,
	})
	return app
}

// Canvas, Layer and Machine may only be used from the app goroutine, e.g.
// inside Do.
func (app *App) Canvas() *canvas.WheelCanvas { return app.canvas }
func (app *App) Layer() *ui.Layer            { return app.layer }
func (app *App) Machine() *phase.Machine     { return app.machine }

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Run starts the renderer and input, opens the start phase and serves the
// event loop until ctx is done or Exit is called.
func (app *App) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return errors.New("app already started")
	}
	defer close(app.done)

	if !app.registry.Has(phase.DefaultPhase) {
		return errors.New("phase registry has no default phase")
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.console {
		defer system.EnterGraphicsConsole(app.Logger)()
	}

	if err := app.Buttons.Start(ctx); err != nil {
		app.Logger.Errorf("input", "buttons start error: %v", err)
	}
	defer app.Buttons.Stop()
	presses := app.Buttons.Events()

	app.machine.Start(app.startPhase)
	app.frame(time.Now())

	var ticker *time.Ticker
	var tick <-chan time.Time
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		switch animating := app.animating(); {
		case animating && ticker == nil:
			ticker = time.NewTicker(app.frameInterval)
			tick = ticker.C
		case !animating && ticker != nil:
			ticker.Stop()
			ticker, tick = nil, nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case fn := <-app.events:
			fn()
			app.dirty = true
		case e, ok := <-presses:
			if !ok {
				presses = nil
				continue
			}
			app.HandleButton(e)
		case now := <-tick:
			app.frame(now)
		}

		if app.dirty && !app.animating() {
			app.frame(time.Now())
		}
	}
}

func (app *App) animating() bool {
	return app.wheelLoop.Armed() || app.overlayLoop.Armed()
}

// frame advances both animations to now and presents the composed image.
func (app *App) frame(now time.Time) {
	if !app.wheelLoop.Frame(now) {
		app.canvas.Repaint()
	}
	app.overlayLoop.Frame(now)

	focus := ""
	if app.focusVisible {
		if n := app.layer.Focused(); n != nil {
			focus = n.ID
		}
	}
	app.painter.Paint(app.surface, app.layer.Views(), focus)
	if err := app.Render.Present(app.surface.Image()); err != nil {
		app.Logger.Errorf("app", "present error: %v", err)
	}
	app.Store.UpdateFrame(app.canvas.State().Placement.String(), app.animating(), app.layer.Len())
	app.dirty = false
}

// Post queues fn to run on the app goroutine. It is dropped once the app has
// stopped.
func (app *App) Post(fn func()) {
	select {
	case <-app.done:
		return
	default:
	}
	select {
	case app.events <- fn:
	case <-app.done:
	}
}

// Do runs fn on the app goroutine and waits for it to finish.
func (app *App) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}
	select {
	case <-app.done:
		return ErrStopped
	default:
	}
	select {
	case app.events <- wrapped:
	case <-app.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-app.done:
		// fn may have been the last thing the loop ran.
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HandleButton maps a physical button to overlay navigation. Must run on the
// app goroutine.
func (app *App) HandleButton(e buttons.Event) {
	app.focusVisible = true
	app.dirty = true

	var err error
	switch e {
	case buttons.Up:
		app.layer.MoveFocus(-1)
	case buttons.Down:
		app.layer.MoveFocus(1)
	case buttons.Left, buttons.Right:
		delta := 1
		if e == buttons.Left {
			delta = -1
		}
		if n := app.layer.Focused(); n != nil && n.Kind == ui.KindNumberInput {
			err = app.layer.Adjust(float64(delta))
		} else {
			app.layer.MoveFocus(delta)
		}
	case buttons.Select:
		err = app.layer.Activate()
	case buttons.Reset:
		app.reset()
	case buttons.Exit:
		app.Logger.Infof("input", "exit requested")
		app.Exit(nil)
	}
	if err != nil && !errors.Is(err, ui.ErrNoNode) {
		app.Logger.Errorf("input", "%s: %v", e, err)
	}
}

func (app *App) reset() {
	app.Logger.Infof("app", "starting over")
	app.canvas.SetState(wheel.DefaultState())
	app.layer.Clear()
	app.machine.Reset()
}

// Loop-safe accessors used by the HTTP API.

// Status returns the runtime snapshot without touching the app goroutine.
func (app *App) Status() state.Status { return app.Store.Snapshot() }

func (app *App) WheelState(ctx context.Context) (wheel.State, error) {
	var st wheel.State
	err := app.Do(ctx, func() { st = app.canvas.State() })
	return st, err
}

func (app *App) Overlay(ctx context.Context) ([]ui.LayerDescription, error) {
	var out []ui.LayerDescription
	err := app.Do(ctx, func() { out = app.layer.Describe() })
	return out, err
}

// PhaseInfo describes the phase machine for the API.
type PhaseInfo struct {
	Current string      `json:"current"`
	State   phase.State `json:"state"`
	Phases  []string    `json:"phases"`
}

func (app *App) Phase(ctx context.Context) (PhaseInfo, error) {
	var info PhaseInfo
	err := app.Do(ctx, func() {
		info = PhaseInfo{Current: app.machine.Current(), State: app.machine.State(), Phases: app.registry.Names()}
	})
	return info, err
}

// Advance moves to the named phase as if the current phase had advanced.
func (app *App) Advance(ctx context.Context, name string) error {
	if !app.registry.Has(name) {
		return ErrUnknownPhase
	}
	return app.Do(ctx, func() { app.machine.Advance(name) })
}

// StartOver clears the wheel and the phase state and reopens the default phase.
func (app *App) StartOver(ctx context.Context) error {
	return app.Do(ctx, app.reset)
}

// Restore replaces the wheel and the phase state, then reopens the phase the
// state selects. The simulator uses it to jump into the conversation.
func (app *App) Restore(ctx context.Context, ps phase.State, ws wheel.State) error {
	return app.Do(ctx, func() {
		app.canvas.SetState(ws)
		app.layer.Clear()
		app.machine.Restore(ps)
	})
}

// Input is an overlay event from a remote client.
type Input struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Dispatch applies in to the overlay. Actions are click, input, submit,
// change, focus or a button event name.
func (app *App) Dispatch(ctx context.Context, in Input) error {
	var err error
	doErr := app.Do(ctx, func() {
		switch in.Action {
		case "click":
			err = app.layer.Click(in.ID)
		case "input":
			err = app.layer.Input(in.ID, in.Value)
		case "submit":
			err = app.layer.Submit(in.ID)
		case "change":
			err = app.layer.Change(in.ID, in.Value)
		case "focus":
			if _, err = app.layer.Find(in.ID); err == nil {
				app.layer.Focus(in.ID)
			}
		default:
			e, ok := buttons.ParseEvent(in.Action)
			if !ok {
				err = ErrUnknownAction
				return
			}
			app.HandleButton(e)
		}
	})
	if doErr != nil {
		return doErr
	}
	return err
}

// Frame returns a copy of the last composed frame.
func (app *App) Frame(ctx context.Context) (*image.RGBA, error) {
	var out *image.RGBA
	err := app.Do(ctx, func() {
		src := app.surface.Image()
		out = image.NewRGBA(src.Bounds())
		copy(out.Pix, src.Pix)
	})
	return out, err
}

// ExportWheel writes the current wheel, centered and at rest, as PNG.
func (app *App) ExportWheel(ctx context.Context, w io.Writer) error {
	st, err := app.WheelState(ctx)
	if err != nil {
		return err
	}
	return render.WriteWheelPNG(w, st, render.ExportOptions{Fonts: app.fonts})
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/hotkeys/internal/bridge"
	"github.com/dshills/hotkeys/internal/config"
	"github.com/dshills/hotkeys/internal/input"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/shortcut"
	"github.com/dshills/hotkeys/internal/terminal"
)

// ErrAlreadyRunning is returned by Run when the app was already started.
var ErrAlreadyRunning = errors.New("app already running")

// App connects an input source to the trackers and the shortcut registry.
type App struct {
	cfg      config.Config
	log      zerolog.Logger
	platform key.Platform

	target    *input.Target
	keyboard  *input.KeyboardTracker
	mouse     *input.MouseTracker
	shortcuts *shortcut.Registry
	metrics   *prometheus.Registry
	detach    input.Detach

	hub    *bridge.Hub
	screen tcell.Screen

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// Option configures an App.
type Option func(*App)

// WithScreen makes the terminal source read from screen instead of opening
// the real terminal. The screen must already be initialized.
func WithScreen(screen tcell.Screen) Option {
	return func(a *App) {
		a.screen = screen
	}
}

// New builds an app from a validated config. Trackers are attached
// immediately; Run starts the input source.
func New(cfg config.Config, log zerolog.Logger, opts ...Option) (*App, error) {
	platform, err := cfg.Platform()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	reg := newMetricsRegistry()
	inputMetrics := input.NewMetrics(reg)

	a := &App{
		cfg:      cfg,
		log:      log,
		platform: platform,
		target:   input.NewTarget(),
		keyboard: input.NewKeyboardTracker(),
		mouse:    input.NewMouseTracker(),
		metrics:  reg,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.target.SetMetrics(inputMetrics)
	a.keyboard.SetMetrics(inputMetrics)
	a.shortcuts = shortcut.NewRegistry(
		shortcut.WithLogger(WithComponent(log, "shortcut")),
		shortcut.WithMetrics(shortcut.NewMetrics(reg)),
	)

	detachKeyboard := a.keyboard.Attach(a.target)
	detachMouse := a.mouse.Attach(a.target)
	unsubscribe := a.keyboard.OnChange(a.shortcuts.StateChanged)
	a.detach = func() {
		unsubscribe()
		detachMouse()
		detachKeyboard()
	}

	if cfg.Input.Source == config.SourceBridge {
		a.hub = bridge.NewHub(a.target, bridge.Options{
			Addr:    cfg.Bridge.Addr,
			Logger:  WithComponent(log, "bridge"),
			OnReset: a.keyboard.Reset,
		})
	}

	return a, nil
}

// Platform returns the platform used for the command modifier.
func (a *App) Platform() key.Platform { return a.platform }

// Target returns the event target fed by the input source.
func (a *App) Target() *input.Target { return a.target }

// Keyboard returns the keyboard tracker.
func (a *App) Keyboard() *input.KeyboardTracker { return a.keyboard }

// Mouse returns the mouse tracker.
func (a *App) Mouse() *input.MouseTracker { return a.mouse }

// Shortcuts returns the shortcut registry.
func (a *App) Shortcuts() *shortcut.Registry { return a.shortcuts }

// Metrics returns the gatherer holding all app metrics.
func (a *App) Metrics() prometheus.Gatherer { return a.metrics }

// Hub returns the WebSocket bridge, or nil for the terminal source.
func (a *App) Hub() *bridge.Hub { return a.hub }

// Bind parses spec (e.g. "ctrl+shift+KeyS") and registers fn for it.
func (a *App) Bind(spec string, fn shortcut.Callback) error {
	c, err := key.ParseCombo(spec)
	if err != nil {
		return fmt.Errorf("bind %q: %w", spec, err)
	}
	return a.BindCombo(c, fn)
}

// BindCombo registers fn for c. Binding a combo twice is an error. When
// the bridge is active, bridge clients are told about each trigger.
func (a *App) BindCombo(c key.Combo, fn shortcut.Callback) error {
	if fn == nil {
		return fmt.Errorf("bind %s: %w", c, shortcut.ErrNilCallback)
	}

	id := c.String()
	wrapped := func() {
		fn()
		if a.hub != nil {
			a.hub.Notify(id)
		}
	}
	if err := a.shortcuts.Set(c, wrapped, shortcut.KeepExisting()); err != nil {
		return fmt.Errorf("bind %s: %w", c, err)
	}
	return nil
}

// Quit stops a running app. It may be called from a shortcut callback.
func (a *App) Quit() {
	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Run starts the input source and the metrics endpoint and blocks until
// ctx is done, Quit is called or a component fails. Listeners are
// detached before Run returns. An app runs at most once.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.started = true
	a.cancel = cancel
	a.mu.Unlock()

	detached := input.Scope(ctx, a.detach)
	defer func() {
		cancel()
		<-detached
	}()

	var (
		metricsSrv *metricsServer
		metricsLn  net.Listener
	)
	if a.cfg.Metrics.Addr != "" {
		metricsSrv = newMetricsServer(a.cfg.Metrics.Addr, a.metrics, WithComponent(a.log, "metrics"))
		ln, err := metricsSrv.listen()
		if err != nil {
			return err
		}
		metricsLn = ln
	}

	g, gctx := errgroup.WithContext(ctx)

	switch a.cfg.Input.Source {
	case config.SourceBridge:
		if err := a.hub.Start(gctx); err != nil {
			if metricsLn != nil {
				_ = metricsLn.Close()
			}
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			return a.hub.Stop()
		})

	default:
		screen := a.screen
		if screen == nil {
			s, err := terminal.Open()
			if err != nil {
				if metricsLn != nil {
					_ = metricsLn.Close()
				}
				return fmt.Errorf("app: %w", err)
			}
			screen = s
		}
		src := terminal.New(screen, a.target,
			terminal.WithLogger(WithComponent(a.log, "terminal")),
			terminal.WithBlurHandler(func() { a.target.Run(a.keyboard.Reset) }),
		)
		g.Go(func() error {
			// The source also ends when the screen is closed.
			defer cancel()
			return src.Run(gctx)
		})
	}

	if metricsSrv != nil {
		g.Go(func() error {
			return metricsSrv.serve(gctx, metricsLn)
		})
	}

	a.log.Info().
		Str("source", a.cfg.Input.Source).
		Str("platform", a.platform.String()).
		Int("shortcuts", a.shortcuts.Len()).
		Msg("hotkeys running")

	err := g.Wait()
	a.log.Info().Msg("hotkeys stopped")
	return err
}

package terminal

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/input"
)

// Source reads events from a tcell screen and dispatches them to a target.
type Source struct {
	screen tcell.Screen
	target *input.Target
	log    zerolog.Logger
	onBlur func()

	// buttons is the button state of the last mouse event. Only the Run
	// goroutine touches it.
	buttons tcell.ButtonMask

	finiOnce sync.Once
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger for dropped events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Source) {
		s.log = l
	}
}

// WithBlurHandler sets a function called when the terminal loses focus.
// Releases made while unfocused are never reported, so callers usually
// reset their keyboard state here.
func WithBlurHandler(fn func()) Option {
	return func(s *Source) {
		s.onBlur = fn
	}
}

// Open creates and initializes the terminal screen with mouse and focus
// reporting enabled.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	return screen, nil
}

// New creates a source for an initialized screen.
func New(screen tcell.Screen, target *input.Target, opts ...Option) *Source {
	s := &Source{
		screen: screen,
		target: target,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run dispatches events until ctx is done, then finalizes the screen.
func (s *Source) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.fini)
	defer stop()
	defer s.fini()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			// PollEvent returns nil once the screen is finalized.
			return nil
		}
		s.handle(ev)
	}
}

func (s *Source) fini() {
	s.finiOnce.Do(s.screen.Fini)
}

func (s *Source) handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		code, mods, ok := convertKey(e)
		if !ok {
			s.log.Debug().Str("key", e.Name()).Msg("unmapped terminal key")
			return
		}
		down, up := pressEvents(code, mods)
		s.target.DispatchKey(down)
		s.target.DispatchKey(up)

	case *tcell.EventMouse:
		x, y := e.Position()
		for _, ev := range mouseEvents(s.buttons, e.Buttons(), float64(x), float64(y)) {
			ev.Modifiers = convertMod(e.Modifiers())
			s.target.DispatchMouse(ev)
		}
		s.buttons = e.Buttons()

	case *tcell.EventFocus:
		if !e.Focused && s.onBlur != nil {
			s.onBlur()
		}

	case *tcell.EventResize:
		s.screen.Sync()
	}
}

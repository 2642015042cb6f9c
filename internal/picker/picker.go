// Package picker implements the interactive single-choice list picker: a
// cursor state machine driven by key events read from a raw-mode terminal.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/rs/zerolog"

	"github.com/hay-kot/termassist/internal/core/logging"
	"github.com/hay-kot/termassist/internal/tty"
)

// ErrNotTerminal is returned when the picker is started without a terminal
// attached to its input.
var ErrNotTerminal = errors.New("interactive picker requires a terminal")

// RenderFunc draws the current state. It is called once before the first
// event and after every transition that changed the state.
type RenderFunc func(s *State) error

// EventStream is the consumer side of tty.Source.
type EventStream interface {
	Next(ctx context.Context) (tty.Event, error)
	Close()
}

// Options configures a Picker. Zero values fall back to defaults.
type Options struct {
	Tick        time.Duration
	CancelLabel string
	Keys        *KeyMap
}

// Picker runs selections on a terminal.
type Picker struct {
	term   tty.Terminal
	opts   Options
	keys   KeyMap
	events func(in io.Reader, tick time.Duration) EventStream
	log    zerolog.Logger
}

// New returns a Picker drawing on t.
func New(t tty.Terminal, opts Options) *Picker {
	if opts.Tick <= 0 {
		opts.Tick = tty.DefaultTick
	}
	if opts.CancelLabel == "" {
		opts.CancelLabel = DefaultCancelLabel
	}

	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	return &Picker{
		term: t,
		opts: opts,
		keys: keys,
		events: func(in io.Reader, tick time.Duration) EventStream {
			return tty.NewSource(in, tick)
		},
		log: logging.Component("picker"),
	}
}

// Run lets the user pick one of items. It returns the chosen index and true,
// or false when the user cancelled. The terminal is put back into its
// previous mode on every return path.
func (p *Picker) Run(ctx context.Context, items []string, render RenderFunc) (idx int, ok bool, err error) {
	if !p.term.IsTerminal() {
		return -1, false, ErrNotTerminal
	}

	restore, err := p.term.MakeRaw()
	if err != nil {
		return -1, false, fmt.Errorf("acquire terminal: %w", err)
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			p.log.Warn().Err(rerr).Msg("restore terminal")
			if err == nil {
				err = fmt.Errorf("restore terminal: %w", rerr)
			}
		}
	}()

	events := p.events(p.term.Input(), p.opts.Tick)
	// closed before restore runs, so later readers of the input see every key
	defer events.Close()

	state := NewState(items, p.opts.CancelLabel)
	if err := render(state); err != nil {
		return -1, false, fmt.Errorf("render: %w", err)
	}

	for !state.Done() {
		ev, err := events.Next(ctx)
		if err != nil {
			return -1, false, fmt.Errorf("read event: %w", err)
		}

		if !p.apply(state, ev) {
			continue
		}

		if err := render(state); err != nil {
			return -1, false, fmt.Errorf("render: %w", err)
		}
	}

	idx, ok = state.Selected()
	p.log.Debug().
		Int("items", len(items)).
		Stringer("outcome", state.Outcome()).
		Int("index", idx).
		Msg("selection finished")

	return idx, ok, nil
}

// apply maps one event onto a state transition and reports whether the state
// changed. Ticks and unbound keys never change anything.
func (p *Picker) apply(s *State, ev tty.Event) bool {
	if ev.Kind != tty.EventInput {
		return false
	}

	switch {
	case key.Matches(ev.Key, p.keys.Down):
		return s.Down()
	case key.Matches(ev.Key, p.keys.Up):
		return s.Up()
	case key.Matches(ev.Key, p.keys.Confirm):
		return s.Confirm()
	case key.Matches(ev.Key, p.keys.Cancel):
		return s.Cancel()
	}
	return false
}

// Choose runs a selection titled title, drawing on the terminal output, and
// erases the list once the user is done.
func (p *Picker) Choose(ctx context.Context, title string, items []string) (int, bool, error) {
	r := NewRenderer(p.term.Output(), title, p.keys, p.term.Width())
	defer func() { _ = r.Clear() }()

	return p.Run(ctx, items, r.Render)
}

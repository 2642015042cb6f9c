// Package tuitest provides testing utilities for terminal UI components.
package tuitest

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/termassist/internal/tty"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// frames can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \r")
		result = append(result, trimmed)
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press event for a single rune.
func KeyPress(r rune) tty.Event {
	return tty.Event{Kind: tty.EventInput, Key: tty.Key{Code: tty.KeyRune, Rune: r}}
}

// KeyDown creates a down arrow key press event.
func KeyDown() tty.Event {
	return tty.Event{Kind: tty.EventInput, Key: tty.Key{Code: tty.KeyDown}}
}

// KeyUp creates an up arrow key press event.
func KeyUp() tty.Event {
	return tty.Event{Kind: tty.EventInput, Key: tty.Key{Code: tty.KeyUp}}
}

// KeyEnter creates an enter key press event.
func KeyEnter() tty.Event {
	return tty.Event{Kind: tty.EventInput, Key: tty.Key{Code: tty.KeyEnter}}
}

// CtrlC creates a ctrl+c key press event.
func CtrlC() tty.Event {
	return tty.Event{Kind: tty.EventInput, Key: tty.Key{Code: tty.KeyCtrlC}}
}

// Tick creates a tick event.
func Tick() tty.Event {
	return tty.Event{Kind: tty.EventTick}
}

// Events is a scripted event stream. Once the script is exhausted Next
// returns tty.ErrClosed.
type Events struct {
	mu     sync.Mutex
	script []tty.Event
	closed bool
}

// NewEvents returns a stream that yields evs in order.
func NewEvents(evs ...tty.Event) *Events {
	return &Events{script: evs}
}

func (e *Events) Next(ctx context.Context) (tty.Event, error) {
	if err := ctx.Err(); err != nil {
		return tty.Event{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.script) == 0 {
		return tty.Event{}, tty.ErrClosed
	}
	ev := e.script[0]
	e.script = e.script[1:]
	return ev, nil
}

func (e *Events) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

// Closed reports whether Close was called.
func (e *Events) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Terminal is a fake tty.Terminal that records raw mode transitions.
type Terminal struct {
	NotTTY  bool
	RawErr  error
	Out     strings.Builder
	Raw     bool
	Entered int
	Exited  int
	Cols    int

	// OnRestore, if set, runs when raw mode is released.
	OnRestore func()
}

func (t *Terminal) IsTerminal() bool { return !t.NotTTY }

func (t *Terminal) MakeRaw() (func() error, error) {
	if t.RawErr != nil {
		return nil, t.RawErr
	}
	t.Raw = true
	t.Entered++
	return func() error {
		t.Raw = false
		t.Exited++
		if t.OnRestore != nil {
			t.OnRestore()
		}
		return nil
	}, nil
}

func (t *Terminal) Input() io.Reader  { return strings.NewReader("") }
func (t *Terminal) Output() io.Writer { return &t.Out }
func (t *Terminal) Width() int        { return t.Cols }

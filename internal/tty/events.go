// Package tty reads key presses from a raw-mode terminal and merges them with
// periodic ticks into a single event stream.
package tty

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/cancelreader"
)

// DefaultTick is the interval between tick events.
const DefaultTick = 200 * time.Millisecond

const eventBufferSize = 16

// ErrClosed is returned by Next once both producers have stopped and every
// buffered event has been delivered.
var ErrClosed = errors.New("event source closed")

// EventKind tags an Event.
type EventKind int

const (
	EventInput EventKind = iota
	EventTick
)

func (k EventKind) String() string {
	if k == EventTick {
		return "tick"
	}
	return "input"
}

// Event is either a key press (Kind == EventInput) or a tick.
type Event struct {
	Kind EventKind
	Key  Key
}

// Source merges two producers, a key reader and a ticker, into one channel
// with a single consumer. Events from the same producer arrive in order;
// the interleaving between producers is unspecified.
type Source struct {
	events    chan Event
	done      chan struct{}
	input     cancelreader.CancelReader // nil when in cannot be wrapped
	inputDone chan struct{}
	once      sync.Once
}

// NewSource starts the input and tick producers. A non-positive tick uses
// DefaultTick.
//
// Terminals and pipes are read through a cancelable reader: Close interrupts
// the pending read and waits for the input producer to return, so bytes
// arriving after Close are left for the next reader of in. Other readers
// cannot be interrupted and exit on their next read or at end of input.
func NewSource(in io.Reader, tick time.Duration) *Source {
	if tick <= 0 {
		tick = DefaultTick
	}

	s := &Source{
		events:    make(chan Event, eventBufferSize),
		done:      make(chan struct{}),
		inputDone: make(chan struct{}),
	}

	if cr, err := cancelreader.NewReader(in); err == nil {
		s.input = cr
		in = cr
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer close(s.inputDone)
		s.readInput(in)
	}()
	go func() {
		defer wg.Done()
		s.tick(tick)
	}()
	go func() {
		wg.Wait()
		close(s.events)
	}()

	return s
}

// Next blocks until the next event is available.
func (s *Source) Next(ctx context.Context) (Event, error) {
	select {
	case ev, ok := <-s.events:
		if !ok {
			return Event{}, ErrClosed
		}
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Close tells both producers to stop sending. When the pending read can be
// cancelled it also waits for the input producer to stop reading. Safe to
// call more than once.
func (s *Source) Close() {
	s.once.Do(func() {
		close(s.done)
		if s.input != nil && s.input.Cancel() {
			<-s.inputDone
			_ = s.input.Close()
		}
	})
}

func (s *Source) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// send delivers ev unless the consumer has gone away.
func (s *Source) send(ev Event) bool {
	if s.closed() {
		return false
	}
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

func (s *Source) readInput(in io.Reader) {
	dec := newDecoder(in)
	for {
		key, err := dec.next()
		if err != nil {
			if endOfInput(err) || s.closed() {
				return
			}
			// transient read errors are dropped
			continue
		}
		if !s.send(Event{Kind: EventInput, Key: key}) {
			return
		}
	}
}

func (s *Source) tick(d time.Duration) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if !s.send(Event{Kind: EventTick}) {
				return
			}
		}
	}
}

func endOfInput(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, cancelreader.ErrCanceled) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed)
}

package tty

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextInput(t *testing.T, ctx context.Context, s *Source) Event {
	t.Helper()
	for {
		ev, err := s.Next(ctx)
		require.NoError(t, err)
		if ev.Kind == EventInput {
			return ev
		}
	}
}

func TestSource_InputOrder(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src := NewSource(strings.NewReader("\x1b[B\x1b[Ajk\r"), time.Hour)
	defer src.Close()

	want := []string{"down", "up", "j", "k", "enter"}
	for _, name := range want {
		ev := nextInput(t, ctx, src)
		assert.Equal(t, name, ev.Key.String())
	}
}

func TestSource_Ticks(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	src := NewSource(pr, 5*time.Millisecond)
	defer src.Close()

	for range 3 {
		ev, err := src.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, EventTick, ev.Kind)
	}
}

func TestSource_ClosedAfterProducersExit(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src := NewSource(strings.NewReader(""), time.Hour)
	src.Close()
	src.Close() // idempotent

	for {
		_, err := src.Next(ctx)
		if err != nil {
			require.ErrorIs(t, err, ErrClosed)
			return
		}
	}
}

func TestSource_NextHonoursContext(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	src := NewSource(pr, time.Hour)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSource_CloseReleasesInput(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = w.Close()
		_ = r.Close()
	})

	src := NewSource(r, time.Hour)

	_, err = w.Write([]byte("j"))
	require.NoError(t, err)
	ev := nextInput(t, ctx, src)
	assert.Equal(t, "j", ev.Key.String())

	closed := make(chan struct{})
	go func() {
		src.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-ctx.Done():
		t.Fatal("Close did not return")
	}

	// a prompt reading the same input after the picker must see every key
	_, err = w.Write([]byte("y"))
	require.NoError(t, err)

	got := make(chan string, 1)
	go func() {
		buf := make([]byte, 1)
		n, _ := r.Read(buf)
		got <- string(buf[:n])
	}()

	select {
	case s := <-got:
		assert.Equal(t, "y", s)
	case <-ctx.Done():
		t.Fatal("byte written after Close never reached the next reader")
	}
}

func TestSource_ReadErrorsAreSwallowed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src := NewSource(&flakyReader{data: "\r"}, time.Hour)
	defer src.Close()

	ev := nextInput(t, ctx, src)
	assert.Equal(t, KeyEnter, ev.Key.Code)
}

// flakyReader fails once before returning data, then reports EOF.
type flakyReader struct {
	failed bool
	data   string
}

func (r *flakyReader) Read(p []byte) (int, error) {
	if !r.failed {
		r.failed = true
		return 0, assert.AnError
	}
	if r.data == "" {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

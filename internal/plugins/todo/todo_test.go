package todo

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	coretodo "github.com/hay-kot/termassist/internal/core/todo"
	"github.com/hay-kot/termassist/internal/plugins"
	"github.com/hay-kot/termassist/internal/store/yamlfile"
	"github.com/hay-kot/termassist/internal/termassist"
	"github.com/hay-kot/termassist/pkg/tuitest"
)

type harness struct {
	app     *termassist.App
	path    string
	chooser *tuitest.Chooser
	confirm *tuitest.Confirmer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	path := filepath.Join(t.TempDir(), "todo.yml")
	h := &harness{
		path:    path,
		chooser: &tuitest.Chooser{},
		confirm: &tuitest.Confirmer{Answer: true},
	}
	h.app = &termassist.App{
		Todos:   yamlfile.NewTodoStore(path),
		Picker:  h.chooser,
		Confirm: h.confirm,
	}
	return h
}

// run builds a fresh command tree for every invocation, like a new process.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	reg, err := plugins.NewRegistry(&out, New(h.app))
	require.NoError(t, err)

	root, err := reg.Register(&cli.Command{Name: "termassist", Writer: &out})
	require.NoError(t, err)

	err = root.Run(context.Background(), append([]string{"termassist"}, args...))
	return tuitest.StripANSI(out.String()), err
}

func (h *harness) messages(t *testing.T) []string {
	t.Helper()
	msgs, err := h.app.Todos.List(context.Background())
	require.NoError(t, err)
	return msgs
}

func TestTodo_AddShowDone(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "todo", "add", "buy milk")
	require.NoError(t, err)
	_, err = h.run(t, "todo", "add", "call", "mom")
	require.NoError(t, err)

	out, err := h.run(t, "show")
	require.NoError(t, err)
	assert.Equal(t, "----- TODO ------\n  1. buy milk\n  2. call mom", out)

	out, err = h.run(t, "todo", "done", "1")
	require.NoError(t, err)
	assert.Equal(t, "----- TODO ------\n  1. call mom", out)

	out, err = h.run(t, "todo")
	require.NoError(t, err)
	assert.Equal(t, "----- TODO ------\n  1. call mom", out)
}

func TestTodo_ShowEmpty(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "show")
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.Empty(t, New(h.app).Show(context.Background()))
}

func TestTodo_ShowReportsStoreErrors(t *testing.T) {
	h := newHarness(t)
	h.app.Todos = yamlfile.NewTodoStore(t.TempDir()) // a directory cannot be read as a file

	got := New(h.app).Show(context.Background())
	assert.True(t, strings.HasPrefix(got, "Error in todo show: "), got)
}

func TestTodo_DoneValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "not a number", args: []string{"todo", "done", "first"}, wantErr: ErrInvalidID},
		{name: "out of range", args: []string{"todo", "done", "3"}, wantErr: coretodo.ErrOutOfRange},
		{name: "zero", args: []string{"todo", "done", "0"}, wantErr: coretodo.ErrOutOfRange},
		{name: "missing id", args: []string{"todo", "done"}, wantMsg: "usage: termassist todo done <id>"},
		{name: "missing message", args: []string{"todo", "add"}, wantErr: coretodo.ErrEmptyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.app.Todos.Add(context.Background(), "keep me")
			require.NoError(t, err)

			_, err = h.run(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}

			assert.Equal(t, []string{"keep me"}, h.messages(t), "failed commands leave the store alone")
		})
	}
}

func TestTodo_UnknownSubcommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "todo", "bogus")
	require.NoError(t, err)
	assert.Equal(t, plugins.UsageHint, out)
}

func TestTodo_List(t *testing.T) {
	h := newHarness(t)
	for _, m := range []string{"buy milk", "call mom", "buy bread"} {
		_, err := h.app.Todos.Add(context.Background(), m)
		require.NoError(t, err)
	}

	out, err := h.run(t, "todo", "list", "--match", "buy *")
	require.NoError(t, err)
	assert.Equal(t, "----- TODO ------\n  1. buy milk\n  3. buy bread", out)

	out, err = h.run(t, "todo", "ls", "--match", "call*", "--json")
	require.NoError(t, err)
	assert.Equal(t, `{"id":2,"message":"call mom"}`, out)

	out, err = h.run(t, "todo", "list", "--match", "walk*")
	require.NoError(t, err)
	assert.Equal(t, "----- TODO ------\n  nothing to do", out)
}

func TestTodo_Pick(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		chooser   tuitest.Chooser
		answer    bool
		wantLeft  []string
		wantAsked int
	}{
		{
			name:      "confirmed",
			args:      []string{"todo", "pick"},
			chooser:   tuitest.Chooser{Index: 1, OK: true},
			answer:    true,
			wantLeft:  []string{"buy milk"},
			wantAsked: 1,
		},
		{
			name:      "declined",
			args:      []string{"todo", "pick"},
			chooser:   tuitest.Chooser{Index: 1, OK: true},
			answer:    false,
			wantLeft:  []string{"buy milk", "call mom"},
			wantAsked: 1,
		},
		{
			name:      "skip confirmation",
			args:      []string{"todo", "pick", "--yes"},
			chooser:   tuitest.Chooser{Index: 0, OK: true},
			wantLeft:  []string{"call mom"},
			wantAsked: 0,
		},
		{
			name:     "cancelled",
			args:     []string{"todo", "pick"},
			chooser:  tuitest.Chooser{OK: false},
			wantLeft: []string{"buy milk", "call mom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			*h.chooser = tt.chooser
			h.confirm.Answer = tt.answer

			for _, m := range []string{"buy milk", "call mom"} {
				_, err := h.app.Todos.Add(context.Background(), m)
				require.NoError(t, err)
			}

			_, err := h.run(t, tt.args...)
			require.NoError(t, err)

			assert.Equal(t, []string{"buy milk", "call mom"}, h.chooser.Items)
			assert.Equal(t, "Mark as done", h.chooser.Title)
			assert.Len(t, h.confirm.Questions, tt.wantAsked)
			assert.Equal(t, tt.wantLeft, h.messages(t))
		})
	}
}

func TestTodo_PickEmptySkipsPicker(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "todo", "pick")
	require.NoError(t, err)
	assert.Equal(t, "----- TODO ------\n  nothing to do", out)
	assert.Zero(t, h.chooser.Calls)
}

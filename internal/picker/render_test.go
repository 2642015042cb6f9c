package picker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/termassist/pkg/tuitest"
)

func TestRenderer_Frame(t *testing.T) {
	r := NewRenderer(&strings.Builder{}, "Mark as done", DefaultKeyMap(), 0)
	s := NewState([]string{"buy milk", "call mom"}, "")
	s.Down()

	lines := r.Frame(s)
	require.Len(t, lines, 5)

	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = tuitest.StripANSI(l)
	}

	assert.Equal(t, "Mark as done", plain[0])
	assert.Equal(t, "  buy milk", plain[1])
	assert.Equal(t, "> call mom", plain[2])
	assert.Equal(t, "  Exit", plain[3])
	assert.Contains(t, plain[4], "select")
	assert.Contains(t, plain[4], "quit")
}

func TestRenderer_RenderReplacesPreviousFrame(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out, "", DefaultKeyMap(), 0)
	s := NewState([]string{"a"}, "")

	require.NoError(t, r.Render(s))
	first := out.String()
	assert.NotContains(t, first, "\033[J", "nothing to clear on the first frame")
	assert.Contains(t, first, "\r\n")

	s.Down()
	require.NoError(t, r.Render(s))
	second := strings.TrimPrefix(out.String(), first)
	assert.True(t, strings.HasPrefix(second, "\033[3A\033[J"), "second frame clears the three previous lines")

	require.NoError(t, r.Clear())
	require.NoError(t, r.Clear(), "clearing twice is a no-op")
}

func TestRenderer_ClipsToWidth(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out, "Mark as done", DefaultKeyMap(), 12)
	s := NewState([]string{"a very long todo item that would wrap", "ok"}, "")

	for _, l := range r.Frame(s) {
		assert.LessOrEqual(t, ansi.StringWidth(l), 12, "line %q", tuitest.StripANSI(l))
	}
	assert.Equal(t, "> a very lo…", tuitest.StripANSI(r.Frame(s)[1]))

	// one row per line, so the next frame moves up exactly that many rows
	require.NoError(t, r.Render(s))
	lines := len(r.Frame(s))
	s.Down()
	require.NoError(t, r.Render(s))
	assert.Contains(t, out.String(), fmt.Sprintf("\033[%dA\033[J", lines))
}

func TestKeyMap_Help(t *testing.T) {
	keys := NewKeyMap([]string{"up", "k"}, nil, nil, nil)

	assert.Equal(t, []string{"up", "k"}, keys.Up.Keys())
	assert.Equal(t, "↑/k", keys.Up.Help().Key)
	assert.Equal(t, []string{"down"}, keys.Down.Keys())
	assert.Len(t, keys.FullHelp(), 1)
}

package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap binds key names (see tty.Key.String) to picker actions.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap uses the arrow keys, enter and ctrl+c.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(nil, nil, nil, nil)
}

// NewKeyMap builds a KeyMap; an empty list keeps the default keys for that
// action.
func NewKeyMap(up, down, confirm, cancel []string) KeyMap {
	return KeyMap{
		Up:      binding(up, []string{"up"}, "up"),
		Down:    binding(down, []string{"down"}, "down"),
		Confirm: binding(confirm, []string{"enter"}, "select"),
		Cancel:  binding(cancel, []string{"ctrl+c"}, "quit"),
	}
}

func binding(keys, fallback []string, desc string) key.Binding {
	if len(keys) == 0 {
		keys = fallback
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey(keys), desc),
	)
}

var keySymbols = map[string]string{
	"up":    "↑",
	"down":  "↓",
	"enter": "⏎",
}

func helpKey(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if sym, ok := keySymbols[k]; ok {
			names[i] = sym
			continue
		}
		names[i] = k
	}
	return strings.Join(names, "/")
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

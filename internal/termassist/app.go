// Package termassist wires the configured stores and the interactive picker
// into the dependencies the plugins consume.
package termassist

import (
	"context"
	"time"

	"github.com/hay-kot/termassist/internal/core/config"
	"github.com/hay-kot/termassist/internal/core/remind"
	"github.com/hay-kot/termassist/internal/core/todo"
	"github.com/hay-kot/termassist/internal/picker"
	"github.com/hay-kot/termassist/internal/store/yamlfile"
	"github.com/hay-kot/termassist/internal/tty"
)

// Chooser lets the user pick one of items. ok is false when the user
// cancelled.
type Chooser interface {
	Choose(ctx context.Context, title string, items []string) (idx int, ok bool, err error)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(title string) (bool, error)
}

// App is the central entry point plugins consume. It is allocated before
// the command line is parsed and populated by Configure once the config is
// known.
type App struct {
	Config    *config.Config
	Todos     todo.Store
	Reminders remind.Store
	Picker    Chooser
	Confirm   Confirmer
	Now       func() time.Time
}

// Configure fills the dependencies derived from cfg. Fields that are already
// set are kept, which lets tests inject fakes.
func (a *App) Configure(cfg *config.Config) {
	a.Config = cfg

	if a.Todos == nil {
		a.Todos = yamlfile.NewTodoStore(cfg.TodoFile())
	}
	if a.Reminders == nil {
		a.Reminders = yamlfile.NewReminderStore(cfg.RemindFile())
	}
	if a.Picker == nil {
		keys := picker.NewKeyMap(
			cfg.Picker.Keys.Up,
			cfg.Picker.Keys.Down,
			cfg.Picker.Keys.Confirm,
			cfg.Picker.Keys.Cancel,
		)
		a.Picker = picker.New(tty.Stdio(), picker.Options{
			Tick:        cfg.Picker.TickInterval,
			CancelLabel: cfg.Picker.CancelLabel,
			Keys:        &keys,
		})
	}
	if a.Confirm == nil {
		a.Confirm = picker.HuhConfirmer{}
	}
	if a.Now == nil {
		a.Now = time.Now
	}
}

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the plugin and command set on the event context into
// the log event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if plugin := GetPlugin(ctx); plugin != "" {
		e.Str("plugin", plugin)
	}

	if command := GetCommand(ctx); command != "" {
		e.Str("command", command)
	}
}

// Package logging holds the component and context helpers shared by every
// package that writes to the global zerolog logger.
package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Ctx returns a component logger bound to ctx so ContextHook can pick up
// the plugin and command stored on it.
func Ctx(ctx context.Context, name string) zerolog.Logger {
	return log.With().Str("cmp", name).Ctx(ctx).Logger()
}

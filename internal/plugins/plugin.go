// Package plugins defines the contract every termassist command module
// implements and the registry that routes CLI invocations to them.
package plugins

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"
)

var (
	// ErrDuplicatePlugin is returned when two plugins share a name.
	ErrDuplicatePlugin = errors.New("duplicate plugin name")
	// ErrInvalidName is returned for a plugin with an empty or reserved name.
	ErrInvalidName = errors.New("invalid plugin name")
	// ErrNameMismatch is returned when a plugin does not register exactly one
	// command named after itself.
	ErrNameMismatch = errors.New("plugin must register one command named after itself")
	// ErrUnknownCommand is returned by Plugin.Command for an invocation the
	// plugin does not handle. The registry answers it with the usage hint.
	ErrUnknownCommand = errors.New("unknown command")
)

// Plugin is a self-contained command module.
type Plugin interface {
	// Name returns the plugin name. It is also the name of the top-level
	// command the plugin registers.
	Name() string

	// Register adds the plugin's command tree to app and returns it. The
	// registry binds the actions; plugins only describe their grammar.
	Register(app *cli.Command) *cli.Command

	// Show returns a summary block for the show command, or "" when there is
	// nothing to report. It must not modify stored data. Failures are
	// reported inline in the returned text.
	Show(ctx context.Context) string

	// Command runs the invoked command c, which is either the plugin's own
	// command or one of its nested subcommands. The returned text is printed
	// by the caller; "" prints nothing.
	Command(ctx context.Context, c *cli.Command) (string, error)
}

package logging

import "context"

type contextKey string

const (
	pluginKey  contextKey = "plugin"
	commandKey contextKey = "command"
)

// WithPlugin adds the name of the plugin handling the invocation to the context.
func WithPlugin(ctx context.Context, plugin string) context.Context {
	return context.WithValue(ctx, pluginKey, plugin)
}

// WithCommand adds the invoked subcommand to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// GetPlugin retrieves the plugin name from the context.
// Returns empty string if not present.
func GetPlugin(ctx context.Context) string {
	if name, ok := ctx.Value(pluginKey).(string); ok {
		return name
	}
	return ""
}

// GetCommand retrieves the subcommand from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/hay-kot/termassist/internal/core/logging"
)

// ShowCommand is the name of the built-in summary command.
const ShowCommand = "show"

// UsageHint is printed for invocations no plugin handles.
const UsageHint = "Wrong params. Use --help"

// Registry owns the plugins, merges their command trees into one CLI and
// routes invocations to them.
type Registry struct {
	out      io.Writer
	plugins  []Plugin
	byName   map[string]Plugin
	disabled map[string]bool
}

// NewRegistry returns a registry printing to out. Plugins keep the given
// order for show output.
func NewRegistry(out io.Writer, plugins ...Plugin) (*Registry, error) {
	r := &Registry{
		out:      out,
		byName:   make(map[string]Plugin, len(plugins)),
		disabled: make(map[string]bool),
	}

	for _, p := range plugins {
		name := p.Name()
		if name == "" || name == ShowCommand {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		if _, ok := r.byName[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlugin, name)
		}
		r.byName[name] = p
		r.plugins = append(r.plugins, p)
	}

	return r, nil
}

// Names returns the plugin names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name()
	}
	return names
}

// Disable switches plugins off: show skips them and their commands print a
// notice instead of running. Unknown names are ignored.
func (r *Registry) Disable(names ...string) {
	for _, name := range names {
		if _, ok := r.byName[name]; ok {
			r.disabled[name] = true
		}
	}
}

// Register adds the show command and every plugin's command tree to app,
// binds their actions to Dispatch and makes the usage hint the root action.
func (r *Registry) Register(app *cli.Command) (*cli.Command, error) {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  ShowCommand,
		Usage: "Print the summary of every plugin",
		Action: func(ctx context.Context, c *cli.Command) error {
			for _, block := range r.ShowAll(ctx) {
				if _, err := fmt.Fprintln(r.out, block); err != nil {
					return err
				}
			}
			return nil
		},
	})

	for _, p := range r.plugins {
		before := len(app.Commands)
		app = p.Register(app)

		added := app.Commands[min(before, len(app.Commands)):]
		if len(added) != 1 || added[0].Name != p.Name() {
			return nil, fmt.Errorf("%w: %q", ErrNameMismatch, p.Name())
		}

		r.bind(p.Name(), added[0])
	}

	app.Action = func(ctx context.Context, c *cli.Command) error {
		return r.usage()
	}

	return app, nil
}

// bind routes cmd and all of its subcommands to the plugin called name.
func (r *Registry) bind(name string, cmd *cli.Command) {
	cmd.Action = func(ctx context.Context, c *cli.Command) error {
		return r.Dispatch(ctx, name, c)
	}
	for _, sub := range cmd.Commands {
		r.bind(name, sub)
	}
}

// ShowAll runs every enabled plugin's Show concurrently and returns the
// non-empty summaries in registration order. A panicking plugin is reported
// inline and does not affect the others.
func (r *Registry) ShowAll(ctx context.Context) []string {
	results := make([]string, len(r.plugins))

	var g errgroup.Group
	for i, p := range r.plugins {
		if r.disabled[p.Name()] {
			continue
		}
		g.Go(func() error {
			results[i] = r.show(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]string, 0, len(results))
	for _, s := range results {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *Registry) show(ctx context.Context, p Plugin) (summary string) {
	ctx = logging.WithPlugin(ctx, p.Name())
	ctx = logging.WithCommand(ctx, ShowCommand)

	defer func() {
		if rec := recover(); rec != nil {
			log := logging.Ctx(ctx, "registry")
			log.Error().Interface("panic", rec).Msg("plugin show panicked")
			summary = ShowError(p.Name(), fmt.Errorf("%v", rec))
		}
	}()

	return p.Show(ctx)
}

// Dispatch runs the command c on the plugin called name and prints what it
// returns. Names no plugin owns print the usage hint.
func (r *Registry) Dispatch(ctx context.Context, name string, c *cli.Command) error {
	p, ok := r.byName[name]
	if !ok {
		return r.usage()
	}

	if r.disabled[name] {
		_, err := fmt.Fprintf(r.out, "%s plugin is disabled\n", name)
		return err
	}

	ctx = logging.WithPlugin(ctx, name)
	ctx = logging.WithCommand(ctx, c.Name)

	log := logging.Ctx(ctx, "registry")
	log.Debug().Strs("args", c.Args().Slice()).Msg("dispatch")

	text, err := p.Command(ctx, c)
	if errors.Is(err, ErrUnknownCommand) {
		return r.usage()
	}
	if err != nil {
		log.Debug().Err(err).Msg("command failed")
		return err
	}

	if text == "" {
		return nil
	}
	_, err = fmt.Fprintln(r.out, text)
	return err
}

func (r *Registry) usage() error {
	_, err := fmt.Fprintln(r.out, UsageHint)
	return err
}

// Package todo is the todo list plugin: numbered messages that can be added,
// marked as done by id, or picked interactively.
package todo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/termassist/internal/core/logging"
	"github.com/hay-kot/termassist/internal/core/todo"
	"github.com/hay-kot/termassist/internal/plugins"
	"github.com/hay-kot/termassist/internal/termassist"
	"github.com/hay-kot/termassist/pkg/iojson"
)

// Name is the plugin and command name.
const Name = "todo"

const (
	header    = "----- TODO ------"
	emptyList = "nothing to do"
)

// ErrInvalidID is returned when a todo id is not a number.
var ErrInvalidID = errors.New("ID must be a number")

// Plugin implements plugins.Plugin for the todo list.
type Plugin struct {
	app *termassist.App

	// list flags
	match      string
	jsonOutput bool

	// pick flags
	yes bool
}

var _ plugins.Plugin = (*Plugin)(nil)

// New returns the todo plugin. app is read lazily so it may be configured
// after the command tree is built.
func New(app *termassist.App) *Plugin {
	return &Plugin{app: app}
}

func (p *Plugin) Name() string { return Name }

// Register adds the todo command to the application.
func (p *Plugin) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      Name,
		Usage:     "Manage the todo list",
		UsageText: "termassist todo [command]",
		Description: `Keeps an ordered list of messages. Items are addressed by their
position, starting at 1; removing an item renumbers the ones after it.

Running "termassist todo" without a command prints the list.

Examples:
  termassist todo add buy milk
  termassist todo done 1
  termassist todo list --match "buy *"
  termassist todo pick`,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Append a message to the list",
				UsageText: "termassist todo add <message>",
			},
			{
				Name:      "done",
				Usage:     "Remove the item with the given id",
				UsageText: "termassist todo done <id>",
			},
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "Print the list",
				UsageText: "termassist todo list [--match <glob>] [--json]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "match",
						Aliases:     []string{"m"},
						Usage:       "only show items matching a glob pattern (wildcards also match \"/\")",
						Destination: &p.match,
					},
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &p.jsonOutput,
					},
				},
			},
			{
				Name:      "pick",
				Usage:     "Choose an item to mark as done",
				UsageText: "termassist todo pick [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &p.yes,
					},
				},
			},
		},
	})

	return app
}

// Show returns the numbered list, or "" when it is empty.
func (p *Plugin) Show(ctx context.Context) string {
	messages, err := p.app.Todos.List(ctx)
	if err != nil {
		return plugins.ShowError(Name, err)
	}
	if len(messages) == 0 {
		return ""
	}
	return render(todo.Items(messages))
}

// Command runs the invoked todo subcommand.
func (p *Plugin) Command(ctx context.Context, c *cli.Command) (string, error) {
	switch c.Name {
	case Name:
		if c.Args().Present() {
			return "", plugins.ErrUnknownCommand
		}
		return p.list(ctx)
	case "add":
		return p.add(ctx, c)
	case "done":
		return p.done(ctx, c)
	case "list":
		return p.listFiltered(ctx, c)
	case "pick":
		return p.pick(ctx)
	default:
		return "", plugins.ErrUnknownCommand
	}
}

func (p *Plugin) add(ctx context.Context, c *cli.Command) (string, error) {
	msg, err := todo.NormalizeMessage(strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return "", fmt.Errorf("usage: %s: %w", c.UsageText, err)
	}

	id, err := p.app.Todos.Add(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("add todo: %w", err)
	}

	log := logging.Ctx(ctx, Name)
	log.Info().Int("id", id).Msg("todo added")

	return p.list(ctx)
}

func (p *Plugin) done(ctx context.Context, c *cli.Command) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("usage: %s", c.UsageText)
	}

	id, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, c.Args().First())
	}

	msg, err := p.app.Todos.Remove(ctx, id)
	if err != nil {
		return "", fmt.Errorf("remove todo: %w", err)
	}

	log := logging.Ctx(ctx, Name)
	log.Info().Int("id", id).Str("message", msg).Msg("todo done")

	return p.list(ctx)
}

func (p *Plugin) list(ctx context.Context) (string, error) {
	messages, err := p.app.Todos.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list todos: %w", err)
	}
	return render(todo.Items(messages)), nil
}

func (p *Plugin) listFiltered(ctx context.Context, c *cli.Command) (string, error) {
	if c.Args().Present() {
		return "", plugins.ErrUnknownCommand
	}

	messages, err := p.app.Todos.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list todos: %w", err)
	}

	items := todo.Items(messages)
	if p.match != "" {
		items, err = todo.Filter(items, p.match)
		if err != nil {
			return "", err
		}
	}

	if p.jsonOutput {
		var b strings.Builder
		if err := iojson.WriteLines(&b, items); err != nil {
			return "", err
		}
		return strings.TrimSuffix(b.String(), "\n"), nil
	}

	return render(items), nil
}

func (p *Plugin) pick(ctx context.Context) (string, error) {
	messages, err := p.app.Todos.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list todos: %w", err)
	}
	if len(messages) == 0 {
		return render(nil), nil
	}

	idx, ok, err := p.app.Picker.Choose(ctx, "Mark as done", messages)
	if err != nil {
		return "", fmt.Errorf("pick todo: %w", err)
	}
	if !ok {
		return "", nil
	}

	if !p.yes {
		confirmed, err := p.app.Confirm.Confirm(fmt.Sprintf("Mark %q as done?", messages[idx]))
		if err != nil {
			return "", fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			return "", nil
		}
	}

	if _, err := p.app.Todos.Remove(ctx, idx+1); err != nil {
		return "", fmt.Errorf("remove todo: %w", err)
	}

	return p.list(ctx)
}

func render(items []todo.Item) string {
	if len(items) == 0 {
		return plugins.Block(header, emptyList)
	}

	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("%d. %s", it.ID, it.Message)
	}
	return plugins.Block(header, lines...)
}

// Package remind is the reminder plugin: messages attached to a calendar day
// that show up in the summary on that day.
package remind

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/termassist/internal/core/logging"
	"github.com/hay-kot/termassist/internal/core/remind"
	"github.com/hay-kot/termassist/internal/plugins"
	"github.com/hay-kot/termassist/internal/termassist"
	"github.com/hay-kot/termassist/pkg/iojson"
)

// Name is the plugin and command name.
const Name = "remind"

const (
	header    = "----- REMINDERS ------"
	emptyList = "no reminders"
)

// Plugin implements plugins.Plugin for dated reminders.
type Plugin struct {
	app *termassist.App

	jsonOutput bool
	yes        bool
}

var _ plugins.Plugin = (*Plugin)(nil)

// New returns the reminder plugin. app is read lazily so it may be
// configured after the command tree is built.
func New(app *termassist.App) *Plugin {
	return &Plugin{app: app}
}

func (p *Plugin) Name() string { return Name }

// Register adds the remind command to the application.
func (p *Plugin) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      Name,
		Usage:     "Manage dated reminders",
		UsageText: "termassist remind [command]",
		Description: `Reminders are shown by "termassist show" on the day they are set for.

Running "termassist remind" without a command lists every reminder.

Examples:
  termassist remind add 2024-03-01 pay rent
  termassist remind list
  termassist remind prune`,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a reminder for a day",
				UsageText: "termassist remind add <YYYY-MM-DD> <message>",
			},
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "List every reminder",
				UsageText: "termassist remind list [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &p.jsonOutput,
					},
				},
			},
			{
				Name:      "pick",
				Usage:     "Choose a reminder to delete",
				UsageText: "termassist remind pick [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &p.yes,
					},
				},
			},
			{
				Name:      "prune",
				Usage:     "Delete reminders dated before today",
				UsageText: "termassist remind prune",
			},
		},
	})

	return app
}

// Show returns the reminders due today, or "" when there are none.
func (p *Plugin) Show(ctx context.Context) string {
	reminders, err := p.app.Reminders.List(ctx)
	if err != nil {
		return plugins.ShowError(Name, err)
	}

	due := remind.Due(reminders, p.app.Now())
	if len(due) == 0 {
		return ""
	}

	lines := make([]string, len(due))
	for i, r := range due {
		lines[i] = r.Message
	}
	return plugins.Block(header, lines...)
}

// Command runs the invoked remind subcommand.
func (p *Plugin) Command(ctx context.Context, c *cli.Command) (string, error) {
	switch c.Name {
	case Name:
		if c.Args().Present() {
			return "", plugins.ErrUnknownCommand
		}
		return p.list(ctx)
	case "add":
		return p.add(ctx, c)
	case "list":
		if c.Args().Present() {
			return "", plugins.ErrUnknownCommand
		}
		return p.list(ctx)
	case "pick":
		return p.pick(ctx)
	case "prune":
		return p.prune(ctx)
	default:
		return "", plugins.ErrUnknownCommand
	}
}

func (p *Plugin) add(ctx context.Context, c *cli.Command) (string, error) {
	if c.NArg() < 2 {
		return "", fmt.Errorf("usage: %s", c.UsageText)
	}

	args := c.Args().Slice()
	r, err := remind.New(args[0], strings.Join(args[1:], " "), p.app.Now().Location())
	if err != nil {
		return "", err
	}

	if err := p.app.Reminders.Add(ctx, r); err != nil {
		return "", fmt.Errorf("add reminder: %w", err)
	}

	log := logging.Ctx(ctx, Name)
	log.Info().Time("date", r.Date).Msg("reminder added")

	return fmt.Sprintf("Reminder set for %s (%s)", r.Date.Format(remind.DateLayout), remind.Until(r, p.app.Now())), nil
}

type listEntry struct {
	ID      int    `json:"id"`
	Date    string `json:"date"`
	Message string `json:"message"`
	Due     string `json:"due"`
}

func (p *Plugin) list(ctx context.Context) (string, error) {
	reminders, err := p.app.Reminders.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list reminders: %w", err)
	}

	now := p.app.Now()
	entries := make([]listEntry, len(reminders))
	for i, r := range reminders {
		entries[i] = listEntry{
			ID:      i + 1,
			Date:    r.Date.Format(remind.DateLayout),
			Message: r.Message,
			Due:     remind.Until(r, now),
		}
	}

	if p.jsonOutput {
		var b strings.Builder
		if err := iojson.WriteLines(&b, entries); err != nil {
			return "", err
		}
		return strings.TrimSuffix(b.String(), "\n"), nil
	}

	if len(entries) == 0 {
		return plugins.Block(header, emptyList), nil
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d. %s %s (%s)", e.ID, e.Date, e.Message, e.Due)
	}
	return plugins.Block(header, lines...), nil
}

func (p *Plugin) pick(ctx context.Context) (string, error) {
	reminders, err := p.app.Reminders.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list reminders: %w", err)
	}
	if len(reminders) == 0 {
		return plugins.Block(header, emptyList), nil
	}

	labels := make([]string, len(reminders))
	for i, r := range reminders {
		labels[i] = fmt.Sprintf("%s %s", r.Date.Format(remind.DateLayout), r.Message)
	}

	idx, ok, err := p.app.Picker.Choose(ctx, "Delete reminder", labels)
	if err != nil {
		return "", fmt.Errorf("pick reminder: %w", err)
	}
	if !ok {
		return "", nil
	}

	if !p.yes {
		confirmed, err := p.app.Confirm.Confirm(fmt.Sprintf("Delete %q?", labels[idx]))
		if err != nil {
			return "", fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			return "", nil
		}
	}

	if _, err := p.app.Reminders.Remove(ctx, idx+1); err != nil {
		return "", fmt.Errorf("remove reminder: %w", err)
	}

	return p.list(ctx)
}

func (p *Plugin) prune(ctx context.Context) (string, error) {
	n, err := p.app.Reminders.Prune(ctx, p.app.Now())
	if err != nil {
		return "", fmt.Errorf("prune reminders: %w", err)
	}

	log := logging.Ctx(ctx, Name)
	log.Info().Int("pruned", n).Msg("reminders pruned")

	return "Pruned " + humanize.Plural(n, "reminder", ""), nil
}

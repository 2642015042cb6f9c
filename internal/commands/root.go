// Package commands builds the termassist command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/termassist/internal/core/config"
	"github.com/hay-kot/termassist/internal/core/logging"
	"github.com/hay-kot/termassist/internal/plugins"
	"github.com/hay-kot/termassist/internal/plugins/remind"
	"github.com/hay-kot/termassist/internal/plugins/todo"
	"github.com/hay-kot/termassist/internal/termassist"
	"github.com/hay-kot/termassist/pkg/logutils"
)

// ErrNoDataDir is returned when no data directory can be resolved.
var ErrNoDataDir = errors.New("cannot resolve data directory: set $HOME, $XDG_DATA_HOME or --data-dir")

// Build returns the root command with every plugin registered. app is
// populated in the Before hook once flags and config are known; out receives
// command output.
func Build(flags *Flags, app *termassist.App, out io.Writer, version string) (*cli.Command, error) {
	reg, err := plugins.NewRegistry(out,
		todo.New(app),
		remind.New(app),
	)
	if err != nil {
		return nil, err
	}

	var logCloser func()

	root := &cli.Command{
		Name:      "termassist",
		Usage:     "A small personal assistant for your terminal",
		UsageText: "termassist [global options] command [command options]",
		Description: `termassist keeps a todo list and dated reminders in plain YAML files.

Run 'termassist show' from your shell startup file to print everything that
needs attention today.`,
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic, disabled)",
				Sources:     cli.EnvVars("TERMASSIST_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/termassist.log)",
				Sources:     cli.EnvVars("TERMASSIST_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TERMASSIST_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TERMASSIST_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if flags.DataDir == "" {
				return ctx, ErrNoDataDir
			}

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Always log to a file; use explicit path or default to <datadir>/termassist.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			// Populate the pre-allocated App (plugins already hold a pointer to it)
			app.Configure(cfg)
			reg.Disable(cfg.DisabledPlugins()...)

			log.Debug().
				Str("data_dir", cfg.DataDir).
				Strs("plugins", reg.Names()).
				Strs("disabled", cfg.DisabledPlugins()).
				Msg("configured")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	return reg.Register(root)
}

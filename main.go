package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/fmc-tools/fmca/internal/commands"
	"github.com/fmc-tools/fmca/internal/core/config"
	"github.com/fmc-tools/fmca/internal/core/registry"
	"github.com/fmc-tools/fmca/internal/core/styles"
	"github.com/fmc-tools/fmca/internal/core/validate"
	"github.com/fmc-tools/fmca/internal/fmca"
	"github.com/fmc-tools/fmca/pkg/executil"
	"github.com/fmc-tools/fmca/pkg/logutils"
	"github.com/fmc-tools/fmca/pkg/tmpl"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		fmcaApp   = &fmca.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "fmca",
		Usage:     "Turn FM&C workbook rows into change-tracking CLI commands",
		UsageText: "fmca [global options] command [command options]",
		Description: `fmca reads a modification workbook, validates its sheets, renders one
change-tracking CLI command per eligible row, and records every attempt
in the workbook's append-only Change Log sheet.

Run 'fmca validate' to check a workbook, 'fmca plan' to preview the
commands without executing anything, and 'fmca run' to execute them.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FMCA_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("FMCA_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FMCA_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Point the command templates at the configured executable.
			tmpl.SetTool(cfg.IMPath)

			runner := &executil.ShellRunner{Timeout: cfg.Timeout()}
			svcLogger := log.With().Str("cmp", "fmca").Logger()

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*fmcaApp = fmca.App{
				Config:  cfg,
				Service: fmca.NewService(registry.Builtin(), cfg, runner, svcLogger),
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewValidateCmd(flags, fmcaApp).Register(app)
	app = commands.NewPlanCmd(flags, fmcaApp).Register(app)
	app = commands.NewRunCmd(flags, fmcaApp).Register(app)
	app = commands.NewOpsCmd(flags, fmcaApp).Register(app)
	app = commands.NewLogCmd(flags, fmcaApp).Register(app)
	app = commands.NewMockCmd(flags, fmcaApp).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		exitCode = 1

		var vErr *validate.FailedError
		if errors.As(runErr, &vErr) {
			// Validation findings get their own exit code so callers can
			// tell bad input apart from execution problems.
			exitCode = 2
			fmt.Fprintln(os.Stderr, styles.Failure("Validation Error:"))
			for _, issue := range vErr.Result.Errors {
				fmt.Fprintf(os.Stderr, "  %s\n", issue.Message)
			}
		} else {
			fmt.Fprintln(os.Stderr, runErr.Error())
		}
	}

	os.Exit(exitCode)
}

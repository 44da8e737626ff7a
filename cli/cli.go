package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "ctestplan"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Generate CI execution plans from a ctest registry",
			Flags: append([]cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			}, layoutFlags()...),
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				// A .env file is optional; only a present-but-broken one is an error.
				if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to load .env: %w", err)
				}
				return nil
			},
		},
	}
	// Default action when no command is specified
	app.cli.Action = app.generate
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "generate",
		Usage:  "Emit the JSON execution plan on stdout",
		Action: app.generate,
		Flags:  layoutFlags(),
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List discovered tests in execution order",
		Action: app.list,
		Flags:  layoutFlags(),
	})
	return app
}

func layoutFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "base-dir",
			Usage: "Directory the default layout is derived from (default: executable directory)",
		},
		&cli.StringFlag{
			Name:  "tests-dir",
			Usage: "Build tests directory holding the ctest registry (default: <base-dir>/../build/tests)",
		},
		&cli.StringFlag{
			Name:  "workspace",
			Usage: "Workspace root artifact patterns are expressed against (default: <base-dir>/../..)",
		},
		&cli.StringFlag{
			Name:  "mode",
			Usage: "Execution mode, release or diff (default: derived from the PROJECT environment variable)",
		},
	}
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/foreman/internal/commands"
	"github.com/colonyops/foreman/internal/core/config"
	"github.com/colonyops/foreman/internal/core/styles"
	"github.com/colonyops/foreman/internal/data/db"
	"github.com/colonyops/foreman/internal/data/remote"
	"github.com/colonyops/foreman/internal/data/stores"
	"github.com/colonyops/foreman/internal/foreman"
	"github.com/colonyops/foreman/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
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
		logCloser  func()
		foremanApp = &foreman.App{}
		database   *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "foreman",
		Usage:     "Scan equipment codes and generate preventive work orders",
		UsageText: "foreman [global options] command [command options]",
		Description: `Foreman is a terminal client for a CMMS: scan an asset tag, a work order
number, or a maintenance plan code, and it resolves what you meant and walks
you from a plan match to generated work orders with their checklists.

Run 'foreman' with no arguments to open the interactive scanner.
Run 'foreman sync' to refresh the local cache from the API.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FOREMAN_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("FOREMAN_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FOREMAN_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("FOREMAN_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; TUI and table output own stdout.
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme; unknown names fall back to the default
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			// Open the local cache database
			dbOpts := db.OpenOptions{
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				BusyTimeout:  cfg.Database.BusyTimeout,
			}
			database, err = db.Open(cfg.DataDir, dbOpts)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			snapshotStore := stores.NewSnapshotStore(database)
			genLogStore := stores.NewGenerationLogStore(database)

			client := remote.NewClient(
				cfg.API.BaseURL,
				cfg.API.Token(),
				cfg.API.Timeout,
				log.With().Str("component", "remote").Logger(),
			)

			snapshots := foreman.NewSnapshotService(client, snapshotStore,
				log.With().Str("component", "snapshots").Logger())
			generator := foreman.NewGenerator(client,
				log.With().Str("component", "generator").Logger())

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*foremanApp = *foreman.NewApp(cfg, snapshots, generator, genLogStore,
				log.With().Str("component", "foreman").Logger())
			flags.App = foremanApp

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close database connection
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, foremanApp)

	app = commands.NewScanCmd(flags, foremanApp).Register(app)
	app = commands.NewPredictCmd(flags, foremanApp).Register(app)
	app = commands.NewGenerateCmd(flags, foremanApp).Register(app)
	app = commands.NewLsCmd(flags, foremanApp).Register(app)
	app = commands.NewShowCmd(flags, foremanApp).Register(app)
	app = commands.NewSyncCmd(flags, foremanApp).Register(app)
	app = commands.NewHistoryCmd(flags, foremanApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = tuiCmd.Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'foreman --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

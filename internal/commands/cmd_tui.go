package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/foreman/internal/foreman"
	"github.com/colonyops/foreman/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *foreman.App

	// flags
	companyID  string
	locationID string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *foreman.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "company",
			Usage:       "restrict scanning to this company id",
			Sources:     cli.EnvVars("FOREMAN_COMPANY"),
			Destination: &cmd.companyID,
		},
		&cli.StringFlag{
			Name:        "location",
			Usage:       "restrict scanning to this location id",
			Sources:     cli.EnvVars("FOREMAN_LOCATION"),
			Destination: &cmd.locationID,
		},
	}
}

// Register adds the tui command to the application. The same flags are
// registered on the root command so the no-args default behaves the
// same way.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Launch the interactive scanner",
		UsageText: "foreman tui [--company ID] [--location ID]",
		Action:    cmd.run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(_ context.Context, _ *cli.Command) error {
	filters := cmd.app.Filters(cmd.companyID, cmd.locationID)

	m := tui.New(cmd.app, filters, log.With().Str("component", "tui").Logger())
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

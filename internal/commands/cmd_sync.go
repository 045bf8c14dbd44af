package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/foreman/internal/foreman"
)

type SyncCmd struct {
	flags *Flags
	app   *foreman.App
}

// NewSyncCmd creates a new sync command
func NewSyncCmd(flags *Flags, app *foreman.App) *SyncCmd {
	return &SyncCmd{flags: flags, app: app}
}

// Register adds the sync command to the application
func (cmd *SyncCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "sync",
		Usage:     "Refresh the local cache from the API",
		UsageText: "foreman sync",
		Description: `Fetches companies, assets, plans, plan steps, and work orders from the
remote API and replaces the local cache. Scanning keeps working offline from
the last synced data.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *SyncCmd) run(ctx context.Context, c *cli.Command) error {
	snap, err := cmd.app.Snapshots.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "synced %d companies, %d assets, %d plans, %d steps, %d work orders\n",
		len(snap.Companies), len(snap.Assets), len(snap.Plans), len(snap.PlanSteps), len(snap.WorkOrders))
	return nil
}

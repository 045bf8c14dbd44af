package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/foreman/internal/core/styles"
	"github.com/colonyops/foreman/internal/data/stores"
	"github.com/colonyops/foreman/internal/foreman"
	"github.com/colonyops/foreman/pkg/iojson"
)

type HistoryCmd struct {
	flags *Flags
	app   *foreman.App

	// flags
	jsonOutput bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags, app *foreman.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "List past generation batches",
		UsageText: "foreman history [BATCH_ID] [--json]",
		Description: `Shows the audit log of generation batches, newest first. Failed batches
are included with the work orders they created before failing, which is how
remote orphans are found after a partial batch.

With a BATCH_ID argument, shows that batch in full.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	if id := c.Args().First(); id != "" {
		return cmd.showBatch(ctx, c, id)
	}

	batches, err := cmd.app.History(ctx)
	if err != nil {
		return fmt.Errorf("list batches: %w", err)
	}

	out := c.Root().Writer

	if len(batches) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No generation batches recorded\n")
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, b := range batches {
			if err := iojson.WriteLine(out, b); err != nil {
				return fmt.Errorf("encode batch: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CREATED\tCODE\tPLANS\tWORK ORDERS\tRESULT")

	for _, b := range batches {
		result := "ok"
		if b.Failed {
			result = "failed"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			b.CreatedAt.Format("2006-01-02 15:04"), b.ScannedCode, len(b.PlanIDs),
			strings.Join(b.WorkOrderIDs, ","), result)
	}

	_ = w.Flush()
	return nil
}

func (cmd *HistoryCmd) showBatch(ctx context.Context, c *cli.Command, id string) error {
	batch, err := cmd.app.Batch(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return fmt.Errorf("no generation batch %q recorded", id)
		}
		return fmt.Errorf("get batch: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteIndent(out, batch)
	}

	result := styles.Success().Render("ok")
	if batch.Failed {
		result = styles.Error().Render("failed")
	}
	fmt.Fprintf(out, "%s  %s\n", styles.Highlight().Render(batch.ID), result)
	fmt.Fprintf(out, "created:     %s\n", batch.CreatedAt.Format("2006-01-02 15:04:05"))
	if batch.ScannedCode != "" {
		fmt.Fprintf(out, "code:        %s\n", batch.ScannedCode)
	}
	if batch.AssetID != "" {
		fmt.Fprintf(out, "asset:       %s\n", batch.AssetID)
	}
	fmt.Fprintf(out, "plans:       %s\n", strings.Join(batch.PlanIDs, ", "))
	fmt.Fprintf(out, "work orders: %s\n", strings.Join(batch.WorkOrderIDs, ", "))
	if batch.Error != "" {
		fmt.Fprintf(out, "error:       %s\n", batch.Error)
	}
	return nil
}

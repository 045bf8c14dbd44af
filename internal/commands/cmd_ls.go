package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/foreman"
	"github.com/colonyops/foreman/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *foreman.App

	// flags
	status     string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *foreman.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List work orders",
		UsageText: "foreman ls [--status STATUS] [--json]",
		Description: `Displays a table of work orders with their number, title, status, and
asset. Use --json for line-oriented output suitable for scripts.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Usage:       "only show work orders with this status",
				Destination: &cmd.status,
			},
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

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	snap, err := cmd.app.Snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	orders := snap.WorkOrders
	if cmd.status != "" {
		orders = slices.DeleteFunc(slices.Clone(orders), func(wo maintenance.WorkOrder) bool {
			return !strings.EqualFold(wo.Status, cmd.status)
		})
	}

	out := c.Root().Writer

	if len(orders) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No work orders found\n")
		}
		return nil
	}

	slices.SortFunc(orders, func(a, b maintenance.WorkOrder) int {
		return strings.Compare(a.Number, b.Number)
	})

	if cmd.jsonOutput {
		for _, wo := range orders {
			if err := iojson.WriteLine(out, wo); err != nil {
				return fmt.Errorf("encode work order: %w", err)
			}
		}
		return nil
	}

	// Truncate titles so rows fit the terminal when attached to one.
	titleWidth := 60
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 50 {
		titleWidth = w - 50
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NUMBER\tTITLE\tSTATUS\tTYPE\tPRIORITY\tASSET")

	for _, wo := range orders {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			wo.Number, truncateTitle(wo.Title, titleWidth), wo.Status, wo.WorkType, wo.Priority, wo.AssetID)
	}

	_ = w.Flush()
	return nil
}

// truncateTitle shortens s to at most width runes, ending with an
// ellipsis. Widths below 10 clamp up so a very narrow terminal cannot
// drive the slice bound negative, and slicing runes rather than bytes
// keeps multi-byte titles intact.
func truncateTitle(s string, width int) string {
	if width < 10 {
		width = 10
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

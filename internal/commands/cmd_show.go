package commands

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/foreman"
	"github.com/colonyops/foreman/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags
	app   *foreman.App

	// flags
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *foreman.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show a work order with its checklist",
		UsageText: "foreman show NUMBER|ID [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as a JSON line",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	ref := c.Args().First()
	if ref == "" {
		return fmt.Errorf("a work order number or id is required. Run 'foreman show --help' for usage")
	}

	snap, err := cmd.app.Snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	var found *maintenance.WorkOrder
	for i, wo := range snap.WorkOrders {
		if strings.EqualFold(wo.Number, ref) || wo.ID == ref {
			found = &snap.WorkOrders[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("work order %q not found", ref)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteLine(out, found)
	}

	md := buildWorkOrderMarkdown(*found, snap)

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render work order: %w", err)
	}

	fmt.Fprint(out, rendered)
	return nil
}

// buildWorkOrderMarkdown formats a work order and the checklist derived
// from its source plan's steps.
func buildWorkOrderMarkdown(wo maintenance.WorkOrder, snap maintenance.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s\n\n", wo.Number, wo.Title)
	fmt.Fprintf(&b, "**Status:** %s · **Type:** %s · **Priority:** %s\n\n", wo.Status, wo.WorkType, wo.Priority)

	if wo.AssetID != "" && wo.AssetID != maintenance.AssetUnresolved {
		fmt.Fprintf(&b, "**Asset:** %s\n\n", wo.AssetID)
	}
	if wo.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", wo.Description)
	}

	if wo.PlanID != "" {
		steps := snap.StepsForPlan(wo.PlanID)
		slices.SortStableFunc(steps, func(a, b maintenance.PlanStep) int {
			return cmp.Compare(a.StepNumber, b.StepNumber)
		})
		if len(steps) > 0 {
			fmt.Fprintf(&b, "## Checklist\n\n")
			for _, step := range steps {
				line := step.TaskDescription
				if step.StandardValue != "" {
					line += fmt.Sprintf(" (standard: %s)", step.StandardValue)
				}
				if step.IsCritical {
					line += " **critical**"
				}
				fmt.Fprintf(&b, "- [ ] %s\n", line)
			}
		}
	}

	return b.String()
}

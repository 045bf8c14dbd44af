package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/core/resolve"
	"github.com/colonyops/foreman/internal/core/styles"
	"github.com/colonyops/foreman/internal/foreman"
	"github.com/colonyops/foreman/pkg/iojson"
)

type ScanCmd struct {
	flags *Flags
	app   *foreman.App

	// flags
	companyID  string
	locationID string
	jsonOutput bool
	generate   bool
}

// NewScanCmd creates a new scan command
func NewScanCmd(flags *Flags, app *foreman.App) *ScanCmd {
	return &ScanCmd{flags: flags, app: app}
}

// Register adds the scan command to the application
func (cmd *ScanCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "scan",
		Usage:     "Resolve a scanned or typed code",
		UsageText: "foreman scan CODE [--company ID] [--location ID] [--generate] [--json]",
		Description: `Runs the identifier resolution cascade on CODE: work order number or id
first, then maintenance plan code by substring, then asset tag, then not found.

With --generate, a plan match opens a multi-select of the candidate plans and
creates one preventive work order per confirmed plan.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "company",
				Usage:       "restrict matches to this company id",
				Destination: &cmd.companyID,
			},
			&cli.StringFlag{
				Name:        "location",
				Usage:       "restrict matches to this location id",
				Destination: &cmd.locationID,
			},
			&cli.BoolFlag{
				Name:        "generate",
				Aliases:     []string{"g"},
				Usage:       "on a plan match, confirm plans and generate work orders",
				Destination: &cmd.generate,
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

// scanResult is the JSON output format for foreman scan --json.
type scanResult struct {
	Code      string                        `json:"code"`
	Outcome   string                        `json:"outcome"`
	WorkOrder *maintenance.WorkOrder        `json:"workOrder,omitempty"`
	Plans     []maintenance.MaintenancePlan `json:"plans,omitempty"`
	Asset     *maintenance.Asset            `json:"asset,omitempty"`
}

func (cmd *ScanCmd) run(ctx context.Context, c *cli.Command) error {
	code := c.Args().First()
	if code == "" {
		return fmt.Errorf("a code argument is required. Run 'foreman scan --help' for usage")
	}

	snap, err := cmd.app.Snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	return cmd.resolveAndPrint(ctx, c, code, snap)
}

// resolveAndPrint runs the cascade on code and prints the outcome. Also
// used by predict --scan to check a predicted code.
func (cmd *ScanCmd) resolveAndPrint(ctx context.Context, c *cli.Command, code string, snap maintenance.Snapshot) error {
	filters := cmd.app.Filters(cmd.companyID, cmd.locationID)
	outcome := resolve.Resolve(code, filters, snap)
	out := c.Root().Writer

	switch o := outcome.(type) {
	case resolve.WorkOrderMatch:
		if cmd.jsonOutput {
			return iojson.WriteLine(out, scanResult{Code: code, Outcome: "work_order", WorkOrder: &o.WorkOrder})
		}
		fmt.Fprintf(out, "%s %s  %s (%s, %s)\n",
			styles.Highlight().Render(o.WorkOrder.Number), o.WorkOrder.Title, o.WorkOrder.Status, o.WorkOrder.WorkType, o.WorkOrder.Priority)
		return nil

	case resolve.PlanSelection:
		if cmd.generate {
			return cmd.runGenerate(ctx, c, code, o, filters, snap)
		}
		if cmd.jsonOutput {
			return iojson.WriteLine(out, scanResult{Code: code, Outcome: "plans", Plans: o.Plans, Asset: o.Asset})
		}
		fmt.Fprintf(out, "%d candidate plan(s):\n", len(o.Plans))
		for _, p := range o.Plans {
			fmt.Fprintf(out, "  %s  %s\n", styles.Highlight().Render(p.ID), p.Name)
		}
		if o.Asset != nil {
			fmt.Fprintf(out, "linked asset: %s (%s)\n", o.Asset.AssetTag, o.Asset.Name)
		}
		return nil

	case resolve.AssetMatch:
		if cmd.jsonOutput {
			return iojson.WriteLine(out, scanResult{Code: code, Outcome: "asset", Asset: &o.Asset})
		}
		fmt.Fprintf(out, "%s  %s\n", styles.Highlight().Render(o.Asset.AssetTag), o.Asset.Name)
		fmt.Fprintln(out, styles.Subtle().Render("no maintenance plans cover this asset"))
		return nil

	default:
		if cmd.jsonOutput {
			return iojson.WriteLine(out, scanResult{Code: code, Outcome: "not_found"})
		}
		return fmt.Errorf("no work order, plan, or asset matches %q", code)
	}
}

// runGenerate confirms the candidate plans and runs the orchestrator.
// With --json every candidate is confirmed without a form so the path
// stays scriptable.
func (cmd *ScanCmd) runGenerate(ctx context.Context, c *cli.Command, code string, sel resolve.PlanSelection, filters maintenance.ScopeFilters, snap maintenance.Snapshot) error {
	out := c.Root().Writer

	planIDs := make([]string, 0, len(sel.Plans))
	for _, p := range sel.Plans {
		planIDs = append(planIDs, p.ID)
	}

	if !cmd.jsonOutput {
		options := make([]huh.Option[string], 0, len(sel.Plans))
		for _, p := range sel.Plans {
			options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", p.ID, p.Name), p.ID).Selected(true))
		}

		var picked []string
		form := huh.NewForm(huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Generate work orders for %s", code)).
				Options(options...).
				Value(&picked),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
		planIDs = picked
	}

	if len(planIDs) == 0 {
		fmt.Fprintln(out, "nothing selected")
		return nil
	}

	gctx := foreman.GenerateContext{Asset: sel.Asset, Filters: filters, ScannedCode: code}
	res, err := cmd.app.GenerateBatch(ctx, planIDs, gctx, snap)
	if err != nil {
		// Report what completed before surfacing the failure.
		for _, wo := range res.WorkOrders {
			fmt.Fprintf(out, "created %s  %s\n", wo.Number, wo.Title)
		}
		return fmt.Errorf("generate: %w", err)
	}

	if cmd.jsonOutput {
		for _, wo := range res.WorkOrders {
			if err := iojson.WriteLine(out, wo); err != nil {
				return fmt.Errorf("encode work order: %w", err)
			}
		}
		return nil
	}

	fmt.Fprintln(out, styles.Success().Render(fmt.Sprintf("created %d work order(s)", len(res.WorkOrders))))
	for _, wo := range res.WorkOrders {
		fmt.Fprintf(out, "  %s  %s\n", styles.Highlight().Render(wo.Number), wo.Title)
	}
	return nil
}

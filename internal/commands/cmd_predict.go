package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/foreman/internal/core/resolve"
	"github.com/colonyops/foreman/internal/foreman"
	"github.com/colonyops/foreman/pkg/iojson"
)

type PredictCmd struct {
	flags *Flags
	app   *foreman.App

	// flags
	companyID   string
	systemID    string
	equipTypeID string
	scan        bool
	jsonOutput  bool
}

// NewPredictCmd creates a new predict command
func NewPredictCmd(flags *Flags, app *foreman.App) *PredictCmd {
	return &PredictCmd{flags: flags, app: app}
}

// Register adds the predict command to the application
func (cmd *PredictCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "predict",
		Usage:     "Predict the template code for a scoping triple",
		UsageText: "foreman predict --company ID --system ID --equipment-type ID [--scan]",
		Description: `Derives the structured plan template code from a company, system, and
equipment type. The company segment prefers the company's short code over its
id. With --scan, the predicted code is immediately run through resolution.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "company",
				Usage:       "company id",
				Required:    true,
				Destination: &cmd.companyID,
			},
			&cli.StringFlag{
				Name:        "system",
				Usage:       "system id",
				Required:    true,
				Destination: &cmd.systemID,
			},
			&cli.StringFlag{
				Name:        "equipment-type",
				Usage:       "equipment type id",
				Required:    true,
				Destination: &cmd.equipTypeID,
			},
			&cli.BoolFlag{
				Name:        "scan",
				Usage:       "resolve the predicted code against current data",
				Destination: &cmd.scan,
			},
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

func (cmd *PredictCmd) run(ctx context.Context, c *cli.Command) error {
	snap, err := cmd.app.Snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	code, ok := resolve.PredictPlanCode(cmd.companyID, cmd.systemID, cmd.equipTypeID, snap.Companies)
	if !ok {
		return fmt.Errorf("prediction needs company, system, and equipment type")
	}

	out := c.Root().Writer

	if cmd.scan {
		scanCmd := &ScanCmd{flags: cmd.flags, app: cmd.app, jsonOutput: cmd.jsonOutput}
		return scanCmd.resolveAndPrint(ctx, c, code, snap)
	}

	if cmd.jsonOutput {
		return iojson.WriteLine(out, map[string]string{"code": code})
	}

	fmt.Fprintln(out, code)
	return nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/foreman/internal/foreman"
	"github.com/colonyops/foreman/pkg/iojson"
)

// generateRequest is the JSON input format for foreman generate.
type generateRequest struct {
	PlanIDs     []string `json:"planIds"`
	CompanyID   string   `json:"companyId,omitempty"`
	LocationID  string   `json:"locationId,omitempty"`
	ScannedCode string   `json:"scannedCode,omitempty"`
}

type GenerateCmd struct {
	flags *Flags
	app   *foreman.App

	reader iojson.FileReader[generateRequest]
}

// NewGenerateCmd creates a new generate command
func NewGenerateCmd(flags *Flags, app *foreman.App) *GenerateCmd {
	return &GenerateCmd{flags: flags, app: app}
}

// Register adds the generate command to the application
func (cmd *GenerateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "generate",
		Usage:     "Generate work orders from a JSON request",
		UsageText: "foreman generate [-f request.json]",
		Description: `Runs the work-order orchestrator from a scripted request instead of an
interactive scan. Reads {"planIds": [...], "companyId": "", "locationId": "",
"scannedCode": ""} from the given file or stdin and prints each created work
order as a JSON line.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *GenerateCmd) run(ctx context.Context, c *cli.Command) error {
	req, err := cmd.reader.Read()
	if err != nil {
		return err
	}
	if len(req.PlanIDs) == 0 {
		return fmt.Errorf("request has no plan ids")
	}

	snap, err := cmd.app.Snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	gctx := foreman.GenerateContext{
		Filters:     cmd.app.Filters(req.CompanyID, req.LocationID),
		ScannedCode: req.ScannedCode,
	}

	out := c.Root().Writer

	res, genErr := cmd.app.GenerateBatch(ctx, req.PlanIDs, gctx, snap)
	for _, wo := range res.WorkOrders {
		if err := iojson.WriteLine(out, wo); err != nil {
			return fmt.Errorf("encode work order: %w", err)
		}
	}
	if genErr != nil {
		return fmt.Errorf("generate: %w", genErr)
	}
	return nil
}

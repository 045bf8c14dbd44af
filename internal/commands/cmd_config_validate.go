package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/foreman/internal/core/styles"
	"github.com/colonyops/foreman/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "foreman config validate [--json]",
				Description: "Validates the configuration file, checking URLs, paths, and theme references.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationReport struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)

	report := validationReport{Valid: err == nil}
	if err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", fe.Field, fe.Err))
			}
		} else {
			report.Errors = append(report.Errors, err.Error())
		}
	}

	if cmd.jsonOutput {
		if err := iojson.WriteIndent(out, report); err != nil {
			return err
		}
		if !report.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	if report.Valid {
		fmt.Fprintln(out, styles.Success().Render("Configuration is valid"))
		return nil
	}

	for _, msg := range report.Errors {
		fmt.Fprintln(os.Stderr, styles.Error().Render(msg))
	}
	return cli.Exit(fmt.Sprintf("%d error(s) found", len(report.Errors)), 1)
}

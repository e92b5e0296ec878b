package cmd

import (
	"github.com/bnema/ctxsim/internal/application"
	"github.com/bnema/ctxsim/internal/domain"
	"github.com/spf13/cobra"
)

func newResultsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Inspect saved run records",
	}

	cmd.AddCommand(newResultsListCmd(app), newResultsShowCmd(app))
	return cmd
}

func newResultsListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved run records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := app.service.ListResults(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				out := make([]recordOutput, 0, len(records))
				for _, record := range records {
					out = append(out, newRecordOutput(record))
				}
				return writeJSON(cmd, out)
			}

			return writeRendered(cmd, "run records", func() (string, error) {
				return app.recordsRenderer(records)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}

func newResultsShowCmd(app *app) *cobra.Command {
	var seedRaw string
	var scenario int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one saved run record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed, err := application.ParseSeed(seedRaw)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("scenario") {
				scenario = app.service.DefaultScenario()
			}

			record, err := app.service.GetResult(cmd.Context(), domain.RunKey{Scenario: scenario, Seed: seed})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, newRecordOutput(record))
			}

			return writeRendered(cmd, "run record", func() (string, error) {
				return app.recordsRenderer([]domain.RunRecord{record})
			})
		},
	}

	cmd.Flags().StringVar(&seedRaw, "seed", "", "Testcase seed (signed integer)")
	cmd.Flags().IntVar(&scenario, "scenario", 0, "Scenario index (default: configured scenario)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

package cmd

import "github.com/spf13/cobra"

func newScenarioCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Inspect the loaded scenario table",
	}

	cmd.AddCommand(newScenarioListCmd(app), newScenarioShowCmd(app))
	return cmd
}

func newScenarioListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scenarios with their position and sample counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summaries := app.service.Scenarios()
			if asJSON {
				return writeJSON(cmd, summaries)
			}

			return writeRendered(cmd, "scenarios", func() (string, error) {
				return app.scenariosRenderer(summaries, app.service.DefaultScenario())
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}

func newScenarioShowCmd(app *app) *cobra.Command {
	var id int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the ground-truth positions of one scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("id") {
				id = app.service.DefaultScenario()
			}

			scenario, err := app.service.Scenario(id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, newScenarioOutput(scenario))
			}

			return writeRendered(cmd, "scenario", func() (string, error) {
				return app.scenarioRenderer(scenario)
			})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Scenario index (default: configured scenario)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}

package cmd

import (
	"fmt"

	resultsadapter "github.com/bnema/ctxsim/internal/adapters/render/results"
	tracezerolog "github.com/bnema/ctxsim/internal/adapters/trace/zerolog"
	"github.com/bnema/ctxsim/internal/application"
	"github.com/bnema/ctxsim/internal/domain"
	"github.com/spf13/cobra"
)

type runOptions struct {
	seed          string
	scenario      int
	asJSON        bool
	steps         bool
	coverage      bool
	save          bool
	tracePath     string
	traceSampling int64
}

func newRunCmd(app *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one path and resolve its context stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("scenario") {
				opts.scenario = app.service.DefaultScenario()
			}
			return runSimulation(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.seed, "seed", "", "Testcase seed (signed integer)")
	cmd.Flags().IntVar(&opts.scenario, "scenario", 0, "Scenario index (default: configured scenario)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&opts.steps, "steps", false, "Show every observation and its resolution")
	cmd.Flags().BoolVar(&opts.coverage, "coverage", false, "Show per-rule match and failure counts")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Persist the run record")
	cmd.Flags().StringVar(&opts.tracePath, "trace", "", "Write a JSON-lines resolver trace to this file")
	cmd.Flags().Int64Var(&opts.traceSampling, "trace-sampling", 1, "Trace only candidates whose sequence number is a multiple of this")
	_ = cmd.MarkFlagRequired("seed")

	return cmd
}

func runSimulation(cmd *cobra.Command, app *app, opts runOptions) error {
	seed, err := application.ParseSeed(opts.seed)
	if err != nil {
		return err
	}

	simulate := application.SimulateCommand{Scenario: opts.scenario, Seed: seed, Save: opts.save}

	var tracer *tracezerolog.Tracer
	if opts.tracePath != "" {
		tracer, err = tracezerolog.Create(opts.tracePath, domain.RunKey{Scenario: opts.scenario, Seed: seed})
		if err != nil {
			return err
		}
		defer tracer.Close()

		tracer.Sampling = opts.traceSampling
		simulate.Observer = tracer
	}

	report, err := app.service.Simulate(cmd.Context(), simulate)
	if err != nil {
		return err
	}

	if tracer != nil {
		if err := tracer.Close(); err != nil {
			return err
		}
	}

	if opts.asJSON {
		return writeJSON(cmd, newRunOutput(report, opts.coverage, opts.steps))
	}

	return writeRendered(cmd, "run report", func() (string, error) {
		return app.reportRenderer(report, resultsadapter.RenderOptions{Steps: opts.steps, Coverage: opts.coverage})
	})
}

func newEvalCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <testcase-seed>",
		Short: "Print the moved/reliable/counter result for one testcase seed",
		Long:  "eval runs one path on the configured scenario and prints its result as JSON. Use `ctxsim eval -- -3` for negative seeds.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.service.Application(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("evaluate testcase: %w", err)
			}
			return writeJSON(cmd, result)
		},
	}
}

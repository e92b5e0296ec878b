package cmd

import (
	"context"
	"errors"
	"runtime"

	resultsadapter "github.com/bnema/ctxsim/internal/adapters/render/results"
	"github.com/bnema/ctxsim/internal/application"
	"github.com/spf13/cobra"
)

var errEmptySeedRange = errors.New("--to must not be less than --from")

type batchOptions struct {
	from     int64
	to       int64
	scenario int
	parallel int
	asJSON   bool
	coverage bool
	save     bool
	progress bool
}

func newBatchCmd(app *app) *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Simulate a range of seeds concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("scenario") {
				opts.scenario = app.service.DefaultScenario()
			}
			return runBatch(cmd, app, opts)
		},
	}

	cmd.Flags().Int64Var(&opts.from, "from", 1, "First seed")
	cmd.Flags().Int64Var(&opts.to, "to", 100, "Last seed (inclusive)")
	cmd.Flags().IntVar(&opts.scenario, "scenario", 0, "Scenario index (default: configured scenario)")
	cmd.Flags().IntVar(&opts.parallel, "parallel", runtime.GOMAXPROCS(0), "Maximum concurrent runs")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&opts.coverage, "coverage", false, "Show per-rule match and failure counts")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Persist every run record")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a progress spinner on stderr")

	return cmd
}

func runBatch(cmd *cobra.Command, app *app, opts batchOptions) error {
	if opts.to < opts.from {
		return errEmptySeedRange
	}

	seeds, err := application.SeedRange(opts.from, opts.to)
	if err != nil {
		return err
	}

	batch := application.BatchCommand{
		Scenario: opts.scenario,
		Seeds:    seeds,
		Parallel: opts.parallel,
		Save:     opts.save,
	}

	var report application.BatchReport
	run := func(ctx context.Context, progress func(done, total int)) error {
		batch.Progress = progress
		var err error
		report, err = app.service.RunBatch(ctx, batch)
		return err
	}

	if opts.progress && !opts.asJSON {
		if err := runBatchSpinner(cmd.Context(), cmd.ErrOrStderr(), len(batch.Seeds), run); err != nil {
			return err
		}
	} else if err := run(cmd.Context(), nil); err != nil {
		return err
	}

	if opts.asJSON {
		return writeJSON(cmd, newBatchOutput(report, opts.coverage))
	}

	return writeRendered(cmd, "batch report", func() (string, error) {
		return app.batchRenderer(report, resultsadapter.RenderOptions{Coverage: opts.coverage})
	})
}

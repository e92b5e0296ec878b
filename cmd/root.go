package cmd

import "github.com/spf13/cobra"

type rootOptions struct {
	configFile string
	verbose    bool
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "ctxsim",
		Short:         "Context stream consistency simulator",
		Long:          "ctxsim generates noisy indoor location streams from per-scenario sample corpora, filters them through the context consistency resolver and reports how many observations moved, stayed reliable or were substituted.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationNoWire] != "" {
				return nil
			}

			wired, err := wireApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default $HOME/.ctxsim/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log run details to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newEvalCmd(app),
		newRunCmd(app),
		newBatchCmd(app),
		newScenarioCmd(app),
		newResultsCmd(app),
	)

	return rootCmd
}

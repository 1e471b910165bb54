package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fudge-schema/internal/config"
)

// app carries the state shared by subcommands once flags are parsed.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "fudgeschema",
		Short: "Resolve Fudge message schemas from type manifests",
		Long: `fudgeschema resolves declared types into the schema nodes a Fudge
encoder uses: primitives, lists and objects with their wire field names.

Settings are read from fudgeschema.yaml, FUDGESCHEMA_* environment
variables and flags, flags winning.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = newLogger(cfg.Verbose)

			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./fudgeschema.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log resolution steps")
	rootCmd.PersistentFlags().StringP("convention", "c", "identity", "naming convention: identity, lower, upper, camel, pascal")

	rootCmd.AddCommand(newResolveCommand(a))
	rootCmd.AddCommand(newCheckCommand(a))
	rootCmd.AddCommand(newNameCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

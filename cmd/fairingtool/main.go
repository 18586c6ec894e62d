// fairingtool builds, inspects and exports fairing shells from definition
// catalogs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/fairingkit/internal/config"
	"github.com/Faultbox/fairingkit/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(iconError)+" "+err.Error())
		os.Exit(1)
	}
}

// tool carries the state shared by all subcommands.
type tool struct {
	overrides config.Overrides
	verbose   bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	t := &tool{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "fairingtool",
		Short:         "Build and export procedural fairing shells",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if t.verbose {
				t.overrides.Debug = true
			}
			cfg, err := config.Load(t.overrides)
			if err != nil {
				return err
			}
			t.cfg = cfg
			logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
			t.log = logger.Named("fairingtool")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	fs := flag.NewFlagSet("fairingtool", flag.ContinueOnError)
	t.overrides.Register(fs)
	root.PersistentFlags().AddGoFlagSet(fs)
	root.PersistentFlags().BoolVarP(&t.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(t.buildCommand())
	root.AddCommand(t.exportCommand())
	root.AddCommand(t.jettisonCommand())
	root.AddCommand(t.catalogCommand())

	return root
}

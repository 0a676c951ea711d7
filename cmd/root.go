package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "l7700nav",
	Short: "Shared-navigation tooling for the L7700 monitor web UI",
	Long: `l7700nav injects the shared navigation fragment into the monitor's
static pages and marks the entry matching each page's route as active.
It can rewrite a page tree in place, serve pages with navigation injected
on the fly, or report which entries are active for a given route.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".l7700nav.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the diagnostic logger for a command invocation.
func newLogger() *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.DisableCaller = true
		log, err = cfg.Build()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

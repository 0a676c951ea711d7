package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/config"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/inject"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/progress"
)

var (
	injectPagesDir string
	injectOutDir   string
	injectDryRun   bool
)

var injectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Inject navigation into every page of a static page tree",
	Long: `Walks the pages directory, injects the shared navigation fragment into
each HTML page, and marks the entry matching the page's route as active.
Pages are rewritten in place unless an output directory is given. A page
whose fragment load fails is left untouched and reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if injectPagesDir != "" {
			cfg.PagesDir = injectPagesDir
		}
		if injectOutDir != "" {
			cfg.OutputDir = injectOutDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := newLogger()
		defer log.Sync()

		in := inject.New(cfg, log, progress.NewReporter())
		in.DryRun = injectDryRun

		res, err := in.Run(context.Background())
		if err != nil {
			return err
		}

		if injectDryRun {
			fmt.Printf("Checked %d pages, %d injectable, %d failed (dry run)\n",
				res.Pages, res.Injected, res.Failed)
			return nil
		}
		fmt.Printf("Injected navigation into %d of %d pages (%d failed)\n",
			res.Injected, res.Pages, res.Failed)
		return nil
	},
}

func init() {
	injectCmd.Flags().StringVar(&injectPagesDir, "pages", "", "pages directory (overrides config)")
	injectCmd.Flags().StringVar(&injectOutDir, "out", "", "output directory (default: rewrite in place)")
	injectCmd.Flags().BoolVar(&injectDryRun, "dry-run", false, "process pages without writing")
	rootCmd.AddCommand(injectCmd)
}

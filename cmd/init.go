package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure navigation injection for your page tree and generates a .l7700nav.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.ConfigExists(".l7700nav.yml") && !initForce {
			return fmt.Errorf(".l7700nav.yml already exists (use --force to overwrite)")
		}
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

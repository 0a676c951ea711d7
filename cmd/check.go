package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/config"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/dom"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/fragment"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/nav"
)

var checkCmd = &cobra.Command{
	Use:   "check ROUTE",
	Short: "Show which navigation entries are active for a route",
	Long: `Loads the shared navigation fragment, classifies every entry in it
against ROUTE, and prints the result. Useful for verifying fragment hrefs
before deploying: "l7700nav check /calls" should mark exactly the calls
entry active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		route := args[0]
		if !strings.HasPrefix(route, "/") {
			return fmt.Errorf("route must start with /, got %q", route)
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// An empty host page: the fragment supplies all entries.
		doc, err := dom.ParseDocument(
			strings.NewReader("<!doctype html><html><head></head><body></body></html>"),
			route,
			dom.WithMarkerAttr(cfg.MarkerAttr),
			dom.WithContainerID(cfg.ContainerID))
		if err != nil {
			return err
		}

		marker := &nav.Marker{
			ActiveClasses:   cfg.ActiveClasses,
			InactiveClasses: cfg.InactiveClasses,
		}
		source, isURL := cfg.FragmentSource()
		var loader *fragment.Loader
		if isURL {
			loader = fragment.NewHTTPLoader(source, http.DefaultClient, marker)
		} else {
			loader = fragment.NewFileLoader(source, marker)
		}

		if err := loader.Load(context.Background(), doc); err != nil {
			return err
		}

		entries := doc.NavEntries()
		if len(entries) == 0 {
			fmt.Println("fragment declares no navigation entries")
			return nil
		}
		for _, e := range entries {
			state := "      "
			if nav.Active(route, e.Href) {
				state = "ACTIVE"
			}
			fmt.Printf("%s  %s\n", state, e.Href)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

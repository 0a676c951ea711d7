package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/config"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
	serveNoInject bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the page tree with navigation injected on the fly",
	Long: `Starts a development server for the monitor UI. HTML pages are served
with the shared navigation fragment injected and the active route marked,
exactly as the batch injector would write them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if serveAllowAll {
			cfg.Server.AllowAll = true
		}
		if serveNoInject {
			cfg.Server.Inject = false
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := newLogger()
		defer log.Sync()

		srv := server.New(cfg, log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		fmt.Printf("Serving %s at http://localhost:%d\n", cfg.PagesDir, cfg.Server.Port)
		fmt.Println("Press Ctrl+C to stop.")

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all", false, "allow all CORS origins (dev mode)")
	serveCmd.Flags().BoolVar(&serveNoInject, "no-inject", false, "serve pages without injecting navigation")
	rootCmd.AddCommand(serveCmd)
}

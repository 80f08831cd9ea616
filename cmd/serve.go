package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/enernova/enernova/internal/authserver"
	"github.com/enernova/enernova/internal/i18n"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the account service",
	Long: `Run the HTTP account service backed by the local account database.
Clients configured with auth.backend: http register against it.

Example:
  enernova serve                        # Listen on localhost:8086
  enernova serve --addr :9000           # Listen on every interface, port 9000`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8086", "address to listen on")
}

func runServe(_ *cobra.Command, _ []string) error {
	cleanup, err := initLogging("enernova-serve")
	if err != nil {
		return err
	}
	defer cleanup()

	tr := i18n.NewLocalizer(cfg.Locale)
	backend, db, err := newLocalBackend(cfg, tr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tp, err := newTracing(cfg)
	if err != nil {
		return err
	}
	defer shutdownTracing(tp)

	handler := authserver.NewHandler(authserver.HandlerConfig{
		Backend:    backend,
		Verifier:   backend,
		Translator: tr,
	})
	var routes http.Handler = handler.Routes()
	if tp.Enabled() {
		routes = tracing.HTTPMiddleware(tp.Tracer(), routes)
	}

	server, err := authserver.NewServer(serveAddr, routes)
	if err != nil {
		return fmt.Errorf("creating account service: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("EnerNova account service on %s (database %s)\n", server.URL(), db.Path())
	fmt.Println("Press Ctrl+C to stop")

	select {
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.ErrorErr(log.CatServer, "stopping account service", err)
	}

	fmt.Println("Account service stopped")
	return nil
}

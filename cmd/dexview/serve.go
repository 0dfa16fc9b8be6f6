package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/dexview/internal/api"
	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/config"
	"github.com/meur/dexview/internal/source"
	"github.com/meur/dexview/internal/sprite"
	"github.com/meur/dexview/internal/view"
)

var (
	serveAddr     string
	serveEndpoint string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog viewer",
	Long: `Starts the HTTP server and loads the catalog once from the record source.
The page shows a loading banner until the first load completes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from PORT)")
	serveCmd.Flags().StringVar(&serveEndpoint, "endpoint", "", "Catalog endpoint: simple or pokemon (default from CATALOG_ENDPOINT)")
}

// newFetcher pairs the configured endpoint with its decoder
func newFetcher(endpoint string, client *source.Client) (catalog.Fetcher, error) {
	switch endpoint {
	case config.EndpointSimple:
		return source.SimpleEndpoint{Client: client}, nil
	case config.EndpointFull:
		return source.FullEndpoint{Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown endpoint %q", endpoint)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveEndpoint != "" {
		cfg.Endpoint = serveEndpoint
	}
	addr := cfg.Addr()
	if serveAddr != "" {
		addr = serveAddr
	}

	client := source.NewClient(cfg.SourceURL, cfg.FetchTimeout)
	fetcher, err := newFetcher(cfg.Endpoint, client)
	if err != nil {
		return err
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	store := catalog.NewStore(fetcher, logger)
	server := api.New(api.Options{
		Store:    store,
		Client:   client,
		Renderer: renderer,
		Memo:     sprite.NewMemo(sprite.NewSelector(nil)),
		Logger:   logger,
		Batch: source.BatchOptions{
			Concurrency: cfg.BatchConcurrency,
			RPS:         cfg.BatchRPS,
		},
		CORSOrigins: cfg.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the initial load is tied to the process lifetime
	go func() {
		_ = store.Load(ctx)
	}()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dexview listening",
			zap.String("addr", addr),
			zap.String("source", client.BaseURL()),
			zap.String("endpoint", cfg.Endpoint),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

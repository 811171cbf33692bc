package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the directory with live catalog reloads",
	Long: `Starts an HTTP server rendering the directory from the catalog on every
request. When the catalog is a JSON file it is watched for changes and
open pages reload automatically.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().Bool("no-reload", false, "disable live reload")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if noReload, _ := cmd.Flags().GetBool("no-reload"); noReload {
		cfg.Server.LiveReload = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := catalog.NewStore(logger)

	// Pages rendered before the first load wait on the store's readiness.
	go func() {
		doc, err := loadCatalog(ctx, cfg)
		if err != nil {
			logger.Error("loading catalog", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Warning: catalog could not be loaded: %v\n", err)
			return
		}
		store.Replace(doc)
	}()

	if cfg.CatalogDB == "" && cfg.Catalog != "" {
		watcher := catalog.NewFileWatcher(cfg.Catalog, store, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Warn("catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	controller, err := newController(cfg, store)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:       cfg.Server.Port,
		BaseURL:    cfg.BaseURL,
		StaticDir:  ".",
		AllowAll:   cfg.Server.AllowAllCORS,
		LiveReload: cfg.Server.LiveReload,
		Language:   preferredLanguage(cfg),
	}, controller, logger)
	if cfg.Server.LiveReload {
		srv.WatchCatalog(ctx)
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	fmt.Printf("Serving at %s - press Ctrl+C to stop\n", url)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go openBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

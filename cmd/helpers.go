package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"go.uber.org/zap"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/config"
	"github.com/ziadkadry99/aidir/internal/db"
	"github.com/ziadkadry99/aidir/internal/i18n"
	"github.com/ziadkadry99/aidir/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `aidir init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadCatalog reads the catalog named by cfg, preferring the SQLite
// database when one is configured.
func loadCatalog(ctx context.Context, cfg *config.Config) (catalog.Document, error) {
	if cfg.CatalogDB != "" {
		if _, err := os.Stat(cfg.CatalogDB); err == nil {
			database, err := db.Open(cfg.CatalogDB)
			if err != nil {
				return catalog.Document{}, err
			}
			defer database.Close()
			doc, err := catalog.LoadDB(ctx, database)
			if err != nil {
				return catalog.Document{}, fmt.Errorf("loading catalog from %s: %w", cfg.CatalogDB, err)
			}
			return doc, nil
		} else if cfg.Catalog == "" {
			return catalog.Document{}, fmt.Errorf("catalog database %s not found\nRun `aidir import` first", cfg.CatalogDB)
		}
	}
	return catalog.LoadFile(cfg.Catalog)
}

// preferredLanguage returns the stored language preference, or the
// configured default when none was saved.
func preferredLanguage(cfg *config.Config) i18n.Language {
	if cfg.PreferencesPath == "" {
		return cfg.Language()
	}
	if _, err := os.Stat(cfg.PreferencesPath); err != nil {
		return cfg.Language()
	}
	prefs, err := i18n.OpenPreferences(cfg.PreferencesPath)
	if err != nil {
		logger.Warn("reading language preference", zap.Error(err))
		return cfg.Language()
	}
	defer prefs.Close()
	lang, ok, err := prefs.Language()
	if err != nil || !ok {
		return cfg.Language()
	}
	return lang
}

// newController builds the page controller for cfg over store.
func newController(cfg *config.Config, store *catalog.Store) (*site.Controller, error) {
	c := site.NewController(cfg.SiteName, store, logger)
	c.ReadyTimeout = cfg.ReadyTimeout()
	if cfg.PagesDir != "" {
		pages, err := site.LoadPages(cfg.PagesDir)
		if err != nil {
			return nil, fmt.Errorf("loading pages: %w", err)
		}
		c.Pages = pages
	}
	return c, nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/i18n"
	"github.com/ziadkadry99/aidir/internal/progress"
	"github.com/ziadkadry99/aidir/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static directory site",
	Long: `Renders the tool grid in both languages, a detail page per tool, the
markdown content pages, the search index and the sitemap into the output
directory, and copies the configured assets.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().String("lang", "", "default language of the site (de or en)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	lang := preferredLanguage(cfg)
	if raw, _ := cmd.Flags().GetString("lang"); raw != "" {
		l, ok := i18n.Parse(raw)
		if !ok {
			return fmt.Errorf("unsupported language %q (want de or en)", raw)
		}
		lang = l
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	doc, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	store := catalog.NewStore(logger)
	store.Replace(doc)

	controller, err := newController(cfg, store)
	if err != nil {
		return err
	}

	gen := site.NewGenerator(controller, cfg.OutputDir, cfg.BaseURL, lang, logger)
	gen.Assets = cfg.Assets
	gen.Reporter = progress.NewReporter()

	res, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages, %d tools, %d assets)\n", cfg.OutputDir, res.Pages, res.Tools, res.Assets)
	if verbose {
		fmt.Printf("Build ID: %s\n", res.BuildID)
	}
	return nil
}

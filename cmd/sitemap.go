package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/aidir/internal/sitemap"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Write sitemap.xml for the catalog",
	Long:  `Writes only the sitemap, with one entry for the site root and one per tool detail page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		doc, err := loadCatalog(context.Background(), cfg)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = filepath.Join(cfg.OutputDir, "sitemap.xml")
		}
		set := sitemap.Build(doc, cfg.BaseURL)
		if err := sitemap.WriteFile(out, set); err != nil {
			return fmt.Errorf("writing sitemap: %w", err)
		}
		fmt.Printf("Sitemap written: %s (%d URLs)\n", out, len(set.URLs))
		return nil
	},
}

func init() {
	sitemapCmd.Flags().StringP("output", "o", "", "output path (defaults to {output_dir}/sitemap.xml)")
	rootCmd.AddCommand(sitemapCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/db"
)

var importCmd = &cobra.Command{
	Use:   "import [catalog.json]",
	Short: "Import a JSON catalog into the SQLite catalog database",
	Long: `Reads a JSON catalog and replaces the contents of the SQLite database
named by catalog_db. Later builds read the database instead of the file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		src := cfg.Catalog
		if len(args) > 0 {
			src = args[0]
		}
		if src == "" {
			return fmt.Errorf("no catalog file given")
		}
		dst, _ := cmd.Flags().GetString("db")
		if dst == "" {
			dst = cfg.CatalogDB
		}
		if dst == "" {
			return fmt.Errorf("no database path: set catalog_db or pass --db")
		}

		doc, err := catalog.LoadFile(src)
		if err != nil {
			return err
		}

		database, err := db.Open(dst)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := catalog.SaveDB(context.Background(), database, doc); err != nil {
			return fmt.Errorf("importing catalog: %w", err)
		}
		fmt.Printf("Imported %d tools from %s into %s\n", len(doc.Tools), src, database.Path())
		return nil
	},
}

func init() {
	importCmd.Flags().String("db", "", "database path (defaults to catalog_db)")
	rootCmd.AddCommand(importCmd)
}

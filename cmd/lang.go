package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/aidir/internal/i18n"
)

var langCmd = &cobra.Command{
	Use:   "lang [de|en]",
	Short: "Show or set the preferred site language",
	Long: `Without an argument prints the stored language preference. With one,
stores it; build and serve use it as the default language.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		prefs, err := i18n.OpenPreferences(cfg.PreferencesPath)
		if err != nil {
			return err
		}
		defer prefs.Close()

		if len(args) == 0 {
			lang, ok, err := prefs.Language()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("%s (default)\n", cfg.Language())
				return nil
			}
			fmt.Println(lang)
			return nil
		}

		lang, ok := i18n.Parse(args[0])
		if !ok {
			return fmt.Errorf("unsupported language %q (want de or en)", args[0])
		}

		var saveErr error
		tr := i18n.New(cfg.Language())
		unsubscribe := prefs.Persist(tr, func(err error) { saveErr = err })
		defer unsubscribe()
		if tr.Language() == lang {
			// No change to observe; store the choice explicitly.
			saveErr = prefs.SetLanguage(lang)
		} else {
			tr.SetLanguage(lang)
		}
		if saveErr != nil {
			return fmt.Errorf("saving preference: %w", saveErr)
		}
		fmt.Printf("Language set to %s\n", lang)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
}

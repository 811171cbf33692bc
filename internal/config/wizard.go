package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// catalogCandidates are files the wizard offers as the catalog source when
// present in the working directory.
var catalogCandidates = []string{"tools.json", "data/tools.json", "catalog.json"}

func detectCatalog() string {
	for _, name := range catalogCandidates {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return "tools.json"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .aidir.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to aidir! Let's configure your directory.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: defaults.SiteName,
	}
	siteName, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}

	// 2. Public base URL, used for the sitemap.
	urlPrompt := promptui.Prompt{
		Label:    "Public base URL",
		Default:  defaults.BaseURL,
		Validate: validateBaseURL,
	}
	baseURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}

	// 3. Catalog file.
	catalogPrompt := promptui.Prompt{
		Label:   "Catalog JSON file",
		Default: detectCatalog(),
	}
	catalogPath, err := catalogPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog path: %w", err)
	}

	// 4. Default language.
	langPrompt := promptui.Select{
		Label: "Default language",
		Items: []string{"de (Deutsch)", "en (English)"},
	}
	langIdx, _, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	languages := []string{"de", "en"}

	// 5. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: defaults.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 6. Extra asset patterns.
	assetsPrompt := promptui.Prompt{
		Label:   "Extra asset patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	assetsStr, err := assetsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("asset patterns: %w", err)
	}

	cfg := DefaultConfig()
	cfg.SiteName = siteName
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.Catalog = catalogPath
	cfg.DefaultLanguage = languages[langIdx]
	cfg.OutputDir = outputDir
	if extra := splitAndTrim(assetsStr); len(extra) > 0 {
		cfg.Assets = append(append([]string(nil), DefaultAssets...), extra...)
	}

	if _, err := os.Stat(cfg.Catalog); os.IsNotExist(err) {
		fmt.Printf("\nNote: %s does not exist yet. Create it before running aidir build.\n", cfg.Catalog)
	}

	if err := cfg.Save(DefaultFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultFile)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// pagesDirCandidates are directory names commonly holding the UI pages,
// checked in order during detection.
var pagesDirCandidates = []string{"templates", "pages", "public", "www"}

// detectPagesDir looks for a directory in the current working tree that
// contains HTML pages.
func detectPagesDir() string {
	for _, dir := range pagesDirCandidates {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.html"))
		if len(matches) > 0 {
			return dir
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .l7700nav.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Let's configure navigation injection for your page tree.")
	fmt.Println()

	defaults := DefaultConfig()

	detected := detectPagesDir()
	if detected != "" {
		fmt.Printf("Detected pages directory: %s\n\n", detected)
	} else {
		detected = defaults.PagesDir
	}

	// 1. Pages directory.
	pagesPrompt := promptui.Prompt{
		Label:   "Directory containing the HTML pages",
		Default: detected,
	}
	pagesDir, err := pagesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("pages dir: %w", err)
	}

	// 2. Fragment source kind.
	sourcePrompt := promptui.Select{
		Label: "Where does the shared navigation fragment live",
		Items: []string{
			"file — shipped with the page tree (e.g. static/nav.html)",
			"url  — served by the monitor backend over HTTP",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("fragment source: %w", err)
	}

	var frag FragmentConfig
	if sourceIdx == 0 {
		filePrompt := promptui.Prompt{
			Label:   "Fragment file path",
			Default: defaults.Fragment.File,
		}
		frag.File, err = filePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("fragment file: %w", err)
		}
	} else {
		urlPrompt := promptui.Prompt{
			Label:   "Fragment URL",
			Default: "http://localhost:8700/static/nav.html",
			Validate: func(s string) error {
				if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
					return fmt.Errorf("must be an http(s) URL")
				}
				return nil
			},
		}
		frag.URL, err = urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("fragment url: %w", err)
		}
	}

	// 3. Visual-state classes.
	activePrompt := promptui.Prompt{
		Label:   "Active classes (comma-separated)",
		Default: strings.Join(defaults.ActiveClasses, ","),
	}
	activeStr, err := activePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("active classes: %w", err)
	}

	inactivePrompt := promptui.Prompt{
		Label:   "Inactive classes (comma-separated)",
		Default: strings.Join(defaults.InactiveClasses, ","),
	}
	inactiveStr, err := inactivePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("inactive classes: %w", err)
	}

	// 4. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := DefaultExcludes
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	// Build the config on top of the defaults.
	cfg := defaults
	cfg.Fragment = frag
	cfg.PagesDir = pagesDir
	cfg.ActiveClasses = splitAndTrim(activeStr)
	cfg.InactiveClasses = splitAndTrim(inactiveStr)
	cfg.Exclude = exclude

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configPath := ".l7700nav.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated list and trims whitespace around
// each element, dropping empties.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ConfigExists reports whether a config file is already present at path.
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

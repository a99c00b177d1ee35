package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// sceneMarkers maps glob patterns to the scene format they indicate.
var sceneMarkers = map[string]string{
	"*.gltf": "glTF",
	"*.mtl":  "Wavefront MTL",
}

// detectSceneFormats checks the current directory for known scene file types.
func detectSceneFormats() []string {
	var found []string
	for marker, name := range sceneMarkers {
		matches, _ := filepath.Glob(marker)
		if len(matches) > 0 {
			found = append(found, name)
		}
	}
	return found
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .texfix.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to texfix! Let's configure your project.")
	fmt.Println()

	if formats := detectSceneFormats(); len(formats) > 0 {
		fmt.Printf("Detected scene files: %s\n\n", strings.Join(formats, ", "))
	}

	// 1. Search root.
	rootPrompt := promptui.Prompt{
		Label:   "Search root for repairs (blank = each scene's own directory)",
		Default: "",
	}
	searchRoot, err := rootPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("search root: %w", err)
	}

	// 2. Exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Exclude patterns for the search (comma-separated globs, blank for none)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	// 3. History.
	historyPrompt := promptui.Select{
		Label: "Record repair sessions",
		Items: []string{"yes", "no"},
	}
	historyIdx, _, err := historyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("history selection: %w", err)
	}

	cfg := DefaultConfig()
	cfg.SearchRoot = strings.TrimSpace(searchRoot)
	cfg.Exclude = splitAndTrim(excludeStr)
	cfg.History = historyIdx == 0

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configPath := ".texfix.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	if _, err := os.Stat(filepath.Dir(cfg.HistoryPath)); os.IsNotExist(err) && cfg.History {
		fmt.Printf("Repair history will be written to %s\n", cfg.HistoryPath)
	}
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

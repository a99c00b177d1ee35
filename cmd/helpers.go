package cmd

import (
	"fmt"
	"os"

	"github.com/mblewuada/texfix/internal/config"
	"github.com/mblewuada/texfix/internal/scan"
	"github.com/mblewuada/texfix/internal/scene"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `texfix init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDocument opens one scene file, honoring a forced format.
func openDocument(path, format string) (scene.Document, error) {
	if format != "" {
		return scene.OpenFormat(path, format)
	}
	return scene.Open(path)
}

// scanOptions builds scan options from config and the global verbose flag.
func scanOptions(cfg *config.Config) *scan.Options {
	opts := &scan.Options{
		Extensions: cfg.Extensions,
		Exclude:    cfg.SkipPaths,
	}
	if verbose {
		opts.Log = os.Stderr
	}
	return opts
}

// searchRootFor picks the repair search root: the --search-root flag wins,
// then the configured root, then the scene file's own directory.
func searchRootFor(cfg *config.Config, flagRoot string, doc scene.Document) string {
	if flagRoot != "" {
		return flagRoot
	}
	if cfg.SearchRoot != "" {
		return cfg.SearchRoot
	}
	return doc.BaseDir()
}

package config

// Config is the top-level texfix configuration, corresponding to .texfix.yml.
type Config struct {
	// SearchRoot is the directory searched during repair. Empty means the
	// scene file's own directory.
	SearchRoot string `yaml:"search_root" koanf:"search_root"`
	// Include restricts the repair search to matching files.
	Include []string `yaml:"include" koanf:"include"`
	// Exclude removes matching files from the repair search.
	Exclude []string `yaml:"exclude" koanf:"exclude"`
	// Extensions is the texture extension allow-list used for scan warnings.
	Extensions []string `yaml:"extensions" koanf:"extensions"`
	// SkipPaths disables existence checks for matching reference values.
	SkipPaths []string `yaml:"skip_paths" koanf:"skip_paths"`
	// History enables recording repair sessions.
	History bool `yaml:"history" koanf:"history"`
	// HistoryPath is the SQLite database location for recorded sessions.
	HistoryPath string `yaml:"history_path" koanf:"history_path"`
}

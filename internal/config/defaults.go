package config

import "path/filepath"

// DefaultExtensions are texture file extensions recognized without warning.
var DefaultExtensions = []string{
	".png",
	".jpg",
	".jpeg",
	".tga",
	".tif",
	".tiff",
	".exr",
	".hdr",
	".dds",
	".bmp",
	".psd",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SearchRoot:  "",
		Include:     nil,
		Exclude:     nil,
		Extensions:  DefaultExtensions,
		SkipPaths:   nil,
		History:     true,
		HistoryPath: filepath.Join(".texfix", "history.db"),
	}
}

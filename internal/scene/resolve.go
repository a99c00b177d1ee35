package scene

import (
	"path/filepath"
	"strings"
)

// Resolver resolves raw texture reference values against a base directory.
type Resolver struct {
	BaseDir string
}

// Resolve turns a raw path attribute into an absolute-or-cleaned filesystem
// path. Backslash separators are normalized first; absolute paths and paths
// with a drive volume are returned as-is, everything else joins BaseDir.
func (r Resolver) Resolve(raw string) string {
	if raw == "" {
		return ""
	}

	norm := normalizeOSPath(raw)
	if filepath.IsAbs(norm) || hasVolume(norm) {
		return filepath.Clean(norm)
	}

	if r.BaseDir == "" {
		return filepath.Clean(norm)
	}

	return filepath.Clean(filepath.Join(r.BaseDir, norm))
}

// Basename returns the file name component of a raw reference value,
// tolerating either separator style.
func Basename(raw string) string {
	return filepath.Base(normalizeOSPath(raw))
}

// IsEmbedded reports whether a reference value names an embedded resource
// (a data: URI) rather than a file on disk.
func IsEmbedded(raw string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "data:")
}

// hasVolume checks if the path starts with a drive volume like "C:".
func hasVolume(p string) bool {
	return len(p) >= 2 && p[1] == ':'
}

// normalizeOSPath normalizes a path for OS-specific separators. Scene files
// authored on Windows commonly carry backslash paths.
func normalizeOSPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return filepath.FromSlash(p)
}

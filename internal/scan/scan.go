// Package scan classifies a document's texture references as valid or
// missing. A reference is missing when its resolved path does not exist on
// the filesystem; scanning never mutates the document.
package scan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mblewuada/texfix/internal/scene"
)

// Missing is a texture reference whose path did not resolve at scan time.
type Missing struct {
	Ref      scene.Ref
	Resolved string // filesystem path that failed the existence check
}

// Report is the outcome of scanning one document.
type Report struct {
	Scene    string
	Total    int // references checked
	Valid    int
	Missing  []Missing // document order
	Warnings []string  // non-fatal diagnostics (unexpected extensions)
}

// Options controls scan behavior. The zero value checks every reference and
// emits no diagnostics.
type Options struct {
	// Extensions is the allowed texture extension list (with leading dot).
	// References with another extension produce a warning, not a failure.
	Extensions []string
	// Exclude skips existence checks for references whose raw value matches
	// any of these glob patterns.
	Exclude []string
	// Log receives per-reference diagnostics when non-nil.
	Log io.Writer
}

func (o *Options) normalize() Options {
	if o == nil {
		return Options{}
	}
	return *o
}

// Run checks every texture reference of doc. Missing references are returned
// in document order, each exactly once; references resolving to an existing
// file are excluded. An empty or unreadable path attribute counts as missing.
// Run has no side effects beyond diagnostics written to opts.Log, so scanning
// twice without mutation yields identical reports.
func Run(doc scene.Document, opts *Options) Report {
	o := opts.normalize()
	resolver := scene.Resolver{BaseDir: doc.BaseDir()}

	rep := Report{Scene: doc.Path()}
	for _, ref := range doc.Refs() {
		rep.Total++

		if len(o.Extensions) > 0 && ref.Raw != "" && !hasAllowedExt(ref.Raw, o.Extensions) {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("%s: unexpected texture extension: %s", ref.Node, ref.Raw))
		}

		if excluded(ref.Raw, o.Exclude) {
			rep.Valid++
			continue
		}

		resolved := resolver.Resolve(ref.Raw)
		if exists(resolved) {
			rep.Valid++
			if o.Log != nil {
				fmt.Fprintf(o.Log, "node %s has a valid texture: %s\n", ref.Node, ref.Raw)
			}
			continue
		}

		if o.Log != nil {
			fmt.Fprintf(o.Log, "node %s: texture file %s doesn't exist\n", ref.Node, ref.Raw)
		}
		rep.Missing = append(rep.Missing, Missing{Ref: ref, Resolved: resolved})
	}

	return rep
}

// exists reports whether path names an existing file.
func exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// hasAllowedExt checks the reference's extension against the allow-list.
func hasAllowedExt(raw string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(raw))
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// excluded checks the raw reference value against exclude glob patterns.
func excluded(raw string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	norm := filepath.ToSlash(strings.TrimSpace(raw))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if ok, err := doublestar.Match(filepath.ToSlash(p), norm); err == nil && ok {
			return true
		}
	}
	return false
}

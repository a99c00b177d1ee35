// Package search builds a file index under a search root for repairing
// broken texture paths. The index maps base names to the files carrying
// them, in traversal order.
package search

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Config controls index construction.
type Config struct {
	Root    string   // directory to walk
	Include []string // glob patterns — only matching files are indexed
	Exclude []string // glob patterns — matching files are skipped
}

// Index is a basename lookup table over the files beneath a search root.
//
// filepath.WalkDir visits entries in lexical order, so for duplicate base
// names the first candidate is deterministic for a given tree.
type Index struct {
	root   string
	count  int
	byName map[string][]string
}

// Build walks the directory tree rooted at cfg.Root and indexes every
// regular file that passes filtering. Unreadable entries are skipped rather
// than aborting the walk.
func Build(cfg Config) (*Index, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("search: resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("search: root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("search: root %s is not a directory", root)
	}

	ix := &Index{
		root:   root,
		byName: make(map[string][]string),
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}

		if d.IsDir() {
			if shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !MatchesInclude(relPath, cfg.Include) {
			return nil
		}
		if MatchesExclude(relPath, cfg.Exclude) {
			return nil
		}

		name := d.Name()
		ix.byName[name] = append(ix.byName[name], path)
		ix.count++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search: traversal: %w", err)
	}

	return ix, nil
}

// Root returns the absolute search root.
func (ix *Index) Root() string { return ix.root }

// Files returns the number of indexed files.
func (ix *Index) Files() int { return ix.count }

// Lookup returns the first file with an exactly matching base name in
// traversal order. The match is case-sensitive.
func (ix *Index) Lookup(name string) (string, bool) {
	paths := ix.byName[name]
	if len(paths) == 0 {
		return "", false
	}
	return paths[0], true
}

// Candidates returns every indexed file with the given base name, in
// traversal order.
func (ix *Index) Candidates(name string) []string {
	paths := ix.byName[name]
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

// Identical reports whether all candidates for name have identical content.
// With a single candidate it is trivially true. Hashing happens here, not
// during the walk, so unambiguous repairs never pay for it.
func (ix *Index) Identical(name string) bool {
	paths := ix.byName[name]
	if len(paths) <= 1 {
		return true
	}

	first, err := hashFile(paths[0])
	if err != nil {
		return false
	}
	for _, p := range paths[1:] {
		h, err := hashFile(p)
		if err != nil || h != first {
			return false
		}
	}
	return true
}

// hashFile computes the SHA-256 digest of the given file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

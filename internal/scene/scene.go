// Package scene provides typed access to texture references inside 3D scene
// and material documents. Each supported file format implements the Document
// interface, which exposes texture path attributes for reading and in-place
// rewriting without touching the rest of the document.
package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownFormat indicates the file extension maps to no registered backend.
var ErrUnknownFormat = errors.New("unknown scene format")

// ErrUnknownRef indicates a SetPath call for a node the document does not contain.
var ErrUnknownRef = errors.New("unknown texture reference")

// Ref is a single texture reference: a node identifier within the document
// plus the raw path attribute value as written in the file.
type Ref struct {
	Node string // node identifier, stable across reads of the same document
	Raw  string // raw path attribute value
}

// Document is a scene or material file holding texture references.
//
// Refs returns references in document order; the order is stable as long as
// the underlying file is unchanged. SetPath overwrites a reference's path
// attribute in memory; Save writes the modified document back to disk.
type Document interface {
	// Path returns the document's location on disk.
	Path() string
	// BaseDir returns the directory containing the document. Relative
	// texture paths resolve against it, and it is the default search root.
	BaseDir() string
	// Refs returns all texture references in document order.
	Refs() []Ref
	// SetPath overwrites the path attribute of the reference identified by
	// node. Returns ErrUnknownRef for an unknown node.
	SetPath(node, newPath string) error
	// Save writes the document, including any rewritten paths, back to disk.
	Save() error
}

// Format identifies a registered document backend.
type Format struct {
	Name string   // short name, usable with the --format flag
	Exts []string // file extensions handled, with leading dot
	Open func(path string) (Document, error)
}

var formats []Format

// Register adds a document backend. Called from backend init functions.
func Register(f Format) {
	formats = append(formats, f)
}

// Formats returns the names of all registered backends, sorted.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// Open loads the document at path, picking the backend by file extension.
func Open(path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		for _, e := range f.Exts {
			if e == ext {
				return f.Open(path)
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// OpenFormat loads the document at path using the named backend, bypassing
// extension detection.
func OpenFormat(path, format string) (Document, error) {
	for _, f := range formats {
		if strings.EqualFold(f.Name, format) {
			return f.Open(path)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

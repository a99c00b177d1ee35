package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func init() {
	Register(Format{Name: "mtl", Exts: []string{".mtl"}, Open: openMTL})
}

// mtlTextureDirectives are the Wavefront MTL statements whose argument is a
// texture file path. Keys are lowercase; matching is case-insensitive.
var mtlTextureDirectives = map[string]struct{}{
	"map_ka":   {},
	"map_kd":   {},
	"map_ks":   {},
	"map_ns":   {},
	"map_d":    {},
	"map_bump": {},
	"bump":     {},
	"disp":     {},
	"decal":    {},
	"refl":     {},
}

// mtlDocument is a Wavefront material library. The file is kept as raw lines
// so a path rewrite touches only the affected line.
type mtlDocument struct {
	path    string
	lines   []string
	noFinal bool // original file had no trailing newline
	refs    []Ref
	byNode  map[string]*mtlRef
}

type mtlRef struct {
	line int    // index into lines
	raw  string // current path token
}

func openMTL(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mtl %s: %w", path, err)
	}

	d := &mtlDocument{
		path:    path,
		lines:   strings.Split(string(data), "\n"),
		noFinal: len(data) > 0 && data[len(data)-1] != '\n',
		byNode:  make(map[string]*mtlRef),
	}
	if !d.noFinal && len(d.lines) > 0 {
		// Drop the empty element produced by the trailing newline; Save
		// restores it.
		d.lines = d.lines[:len(d.lines)-1]
	}

	material := ""
	for i, line := range d.lines {
		fields := strings.Fields(strings.TrimRight(line, "\r"))
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		directive := strings.ToLower(fields[0])
		if directive == "newmtl" && len(fields) > 1 {
			material = fields[1]
			continue
		}
		if _, ok := mtlTextureDirectives[directive]; !ok {
			continue
		}
		if len(fields) < 2 {
			continue
		}

		// Statement options (-bm, -o, ...) precede the file name, so the
		// path is the last token. Paths with spaces are not representable
		// in MTL and are not handled.
		raw := fields[len(fields)-1]
		node := fmt.Sprintf("%s/%s:%d", material, fields[0], i+1)
		d.refs = append(d.refs, Ref{Node: node, Raw: raw})
		d.byNode[node] = &mtlRef{line: i, raw: raw}
	}

	return d, nil
}

func (d *mtlDocument) Path() string    { return d.path }
func (d *mtlDocument) BaseDir() string { return filepath.Dir(d.path) }

func (d *mtlDocument) Refs() []Ref {
	out := make([]Ref, len(d.refs))
	copy(out, d.refs)
	return out
}

func (d *mtlDocument) SetPath(node, newPath string) error {
	ref, ok := d.byNode[node]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRef, node)
	}

	line := d.lines[ref.line]
	at := strings.LastIndex(line, ref.raw)
	if at < 0 {
		return fmt.Errorf("rewriting %s in %s: path token not found", node, d.path)
	}
	d.lines[ref.line] = line[:at] + newPath + line[at+len(ref.raw):]
	ref.raw = newPath

	for i := range d.refs {
		if d.refs[i].Node == node {
			d.refs[i].Raw = newPath
			break
		}
	}
	return nil
}

func (d *mtlDocument) Save() error {
	out := strings.Join(d.lines, "\n")
	if !d.noFinal {
		out += "\n"
	}
	if err := os.WriteFile(d.path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing mtl %s: %w", d.path, err)
	}
	return nil
}

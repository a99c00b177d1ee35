package scan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mblewuada/texfix/internal/scene"
)

// fakeDoc is an in-memory scene.Document for exercising the validator
// without a file-format backend.
type fakeDoc struct {
	path string
	refs []scene.Ref
}

func (d *fakeDoc) Path() string    { return d.path }
func (d *fakeDoc) BaseDir() string { return filepath.Dir(d.path) }
func (d *fakeDoc) Refs() []scene.Ref {
	out := make([]scene.Ref, len(d.refs))
	copy(out, d.refs)
	return out
}
func (d *fakeDoc) SetPath(node, newPath string) error {
	for i := range d.refs {
		if d.refs[i].Node == node {
			d.refs[i].Raw = newPath
			return nil
		}
	}
	return scene.ErrUnknownRef
}
func (d *fakeDoc) Save() error { return nil }

// fixtureDoc creates a scene dir with the given existing texture files and
// returns a document referencing refs (relative to the scene dir).
func fixtureDoc(t *testing.T, existing []string, refs []string) *fakeDoc {
	t.Helper()
	dir := t.TempDir()
	for _, name := range existing {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("pixels"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	doc := &fakeDoc{path: filepath.Join(dir, "scene.gltf")}
	for i, raw := range refs {
		doc.refs = append(doc.refs, scene.Ref{Node: fmt.Sprintf("tex[%d]", i), Raw: raw})
	}
	return doc
}

func TestRun_ValidExcludedMissingIncluded(t *testing.T) {
	doc := fixtureDoc(t,
		[]string{"textures/wood.png"},
		[]string{"textures/wood.png", "textures/gone.png"},
	)

	rep := Run(doc, nil)

	if rep.Total != 2 {
		t.Errorf("Total = %d, want 2", rep.Total)
	}
	if rep.Valid != 1 {
		t.Errorf("Valid = %d, want 1", rep.Valid)
	}
	if len(rep.Missing) != 1 {
		t.Fatalf("Missing = %+v, want exactly one entry", rep.Missing)
	}
	if rep.Missing[0].Ref.Node != "tex[1]" {
		t.Errorf("missing ref = %+v, want tex[1]", rep.Missing[0].Ref)
	}
}

func TestRun_PreservesDocumentOrder(t *testing.T) {
	doc := fixtureDoc(t, nil, []string{"c.png", "a.png", "b.png"})

	rep := Run(doc, nil)

	var got []string
	for _, m := range rep.Missing {
		got = append(got, m.Ref.Raw)
	}
	want := []string{"c.png", "a.png", "b.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("missing order = %v, want %v", got, want)
	}
}

func TestRun_Idempotent(t *testing.T) {
	doc := fixtureDoc(t,
		[]string{"ok.png"},
		[]string{"ok.png", "gone.png", "also_gone.tga"},
	)

	first := Run(doc, nil)
	second := Run(doc, nil)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two scans without mutation differ:\n%+v\n%+v", first, second)
	}
}

func TestRun_EmptyPathIsMissing(t *testing.T) {
	doc := fixtureDoc(t, nil, []string{""})

	rep := Run(doc, nil)
	if len(rep.Missing) != 1 {
		t.Fatalf("empty path should be missing, got %+v", rep)
	}
	if rep.Missing[0].Resolved != "" {
		t.Errorf("resolved = %q, want empty", rep.Missing[0].Resolved)
	}
}

func TestRun_DirectoryIsNotAValidTexture(t *testing.T) {
	doc := fixtureDoc(t, []string{"textures/wood.png"}, []string{"textures"})

	rep := Run(doc, nil)
	if len(rep.Missing) != 1 {
		t.Errorf("a directory path should classify as missing, got %+v", rep)
	}
}

func TestRun_AbsolutePathRef(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "wood.png")
	if err := os.WriteFile(abs, []byte("pixels"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := fixtureDoc(t, nil, nil)
	doc.refs = []scene.Ref{{Node: "tex[0]", Raw: abs}}

	rep := Run(doc, nil)
	if len(rep.Missing) != 0 {
		t.Errorf("absolute existing path should be valid, got %+v", rep.Missing)
	}
}

func TestRun_ExcludePatternsSkipCheck(t *testing.T) {
	doc := fixtureDoc(t, nil, []string{"procedural/noise.png", "textures/gone.png"})

	rep := Run(doc, &Options{Exclude: []string{"procedural/*"}})

	if len(rep.Missing) != 1 || rep.Missing[0].Ref.Raw != "textures/gone.png" {
		t.Errorf("excluded ref should not be checked, got %+v", rep.Missing)
	}
	if rep.Valid != 1 {
		t.Errorf("Valid = %d, want 1 (excluded counts as valid)", rep.Valid)
	}
}

func TestRun_ExtensionWarnings(t *testing.T) {
	doc := fixtureDoc(t, []string{"wood.xcf"}, []string{"wood.xcf"})

	rep := Run(doc, &Options{Extensions: []string{".png", ".tga"}})

	if len(rep.Warnings) != 1 {
		t.Fatalf("expected one extension warning, got %v", rep.Warnings)
	}
	if len(rep.Missing) != 0 {
		t.Errorf("warning must not make an existing file missing: %+v", rep.Missing)
	}
}

func TestRun_VerboseLogging(t *testing.T) {
	doc := fixtureDoc(t, []string{"ok.png"}, []string{"ok.png", "gone.png"})

	var buf bytes.Buffer
	Run(doc, &Options{Log: &buf})

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("valid texture")) {
		t.Errorf("expected valid diagnostic, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("doesn't exist")) {
		t.Errorf("expected missing diagnostic, got %q", out)
	}
}

package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_UnknownExtension(t *testing.T) {
	_, err := Open("scene.fbx")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Open(scene.fbx) error = %v, want ErrUnknownFormat", err)
	}
}

func TestOpenFormat_UnknownName(t *testing.T) {
	_, err := OpenFormat("whatever", "usd")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("OpenFormat(usd) error = %v, want ErrUnknownFormat", err)
	}
}

func TestOpenFormat_BypassesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.txt")
	if err := os.WriteFile(path, []byte("newmtl wood\nmap_Kd wood.png\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenFormat(path, "mtl")
	if err != nil {
		t.Fatalf("OpenFormat(mtl) error: %v", err)
	}
	if got := len(doc.Refs()); got != 1 {
		t.Errorf("expected 1 ref, got %d", got)
	}
}

func TestFormats_Registered(t *testing.T) {
	names := Formats()
	want := map[string]bool{"gltf": false, "mtl": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("format %q not registered", n)
		}
	}
}

func TestResolver(t *testing.T) {
	base := filepath.Join("scenes", "proj")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"relative", "textures/wood.png", filepath.Join(base, "textures", "wood.png")},
		{"relative backslash", `textures\wood.png`, filepath.Join(base, "textures", "wood.png")},
		{"dot segments cleaned", "textures/../wood.png", filepath.Join(base, "wood.png")},
		{"empty", "", ""},
		{"volume untouched", `C:\assets\wood.png`, filepath.Clean(filepath.FromSlash("C:/assets/wood.png"))},
	}

	r := Resolver{BaseDir: base}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Resolve(tc.raw); got != tc.want {
				t.Errorf("Resolve(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestResolver_AbsolutePath(t *testing.T) {
	abs, err := filepath.Abs("wood.png")
	if err != nil {
		t.Fatal(err)
	}
	r := Resolver{BaseDir: "elsewhere"}
	if got := r.Resolve(abs); got != filepath.Clean(abs) {
		t.Errorf("Resolve(%q) = %q, want it untouched", abs, got)
	}
}

func TestBasename(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"textures/wood.png", "wood.png"},
		{`sourceimages\wood.png`, "wood.png"},
		{"wood.png", "wood.png"},
	}
	for _, tc := range tests {
		if got := Basename(tc.raw); got != tc.want {
			t.Errorf("Basename(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestIsEmbedded(t *testing.T) {
	if !IsEmbedded("data:image/png;base64,iVBORw0KGgo=") {
		t.Error("data uri should be embedded")
	}
	if IsEmbedded("textures/wood.png") {
		t.Error("file path should not be embedded")
	}
}

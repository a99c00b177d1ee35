package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func init() {
	Register(Format{Name: "gltf", Exts: []string{".gltf"}, Open: openGLTF})
}

// gltfDocument is a glTF 2.0 JSON document. Texture references live in the
// top-level images array as uri entries. Rewrites go through sjson so the
// rest of the document is preserved byte-for-byte.
type gltfDocument struct {
	path  string
	data  []byte
	refs  []Ref
	attrs map[string]string // node -> sjson path of the uri attribute
}

func openGLTF(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gltf %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("gltf %s: invalid JSON", path)
	}

	d := &gltfDocument{
		path:  path,
		data:  data,
		attrs: make(map[string]string),
	}

	i := 0
	gjson.GetBytes(data, "images").ForEach(func(_, img gjson.Result) bool {
		idx := i
		i++

		uri := img.Get("uri").String()
		// Images without a uri reference a bufferView; data: uris are
		// embedded resources. Neither is a file path on disk.
		if uri == "" || IsEmbedded(uri) {
			return true
		}

		node := fmt.Sprintf("images[%d]", idx)
		d.refs = append(d.refs, Ref{Node: node, Raw: uri})
		d.attrs[node] = fmt.Sprintf("images.%d.uri", idx)
		return true
	})

	return d, nil
}

func (d *gltfDocument) Path() string    { return d.path }
func (d *gltfDocument) BaseDir() string { return filepath.Dir(d.path) }

func (d *gltfDocument) Refs() []Ref {
	out := make([]Ref, len(d.refs))
	copy(out, d.refs)
	return out
}

func (d *gltfDocument) SetPath(node, newPath string) error {
	attr, ok := d.attrs[node]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRef, node)
	}

	// glTF uris always use forward slashes.
	data, err := sjson.SetBytes(d.data, attr, filepath.ToSlash(newPath))
	if err != nil {
		return fmt.Errorf("setting %s in %s: %w", node, d.path, err)
	}
	d.data = data

	for i := range d.refs {
		if d.refs[i].Node == node {
			d.refs[i].Raw = filepath.ToSlash(newPath)
			break
		}
	}
	return nil
}

func (d *gltfDocument) Save() error {
	if err := os.WriteFile(d.path, d.data, 0o644); err != nil {
		return fmt.Errorf("writing gltf %s: %w", d.path, err)
	}
	return nil
}

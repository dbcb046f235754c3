package screenreport

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// tree creates files below a new temporary directory and returns it.
func tree(t *testing.T, rels ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range rels {
		write(t, filepath.Join(root, filepath.FromSlash(rel)), rel)
	}
	return root
}

// paths flattens groups into image paths, using forward slashes.
func paths(gs []Group) map[string][]string {
	out := map[string][]string{}
	for _, g := range gs {
		for _, i := range g.Images {
			out[g.Name] = append(out[g.Name], filepath.ToSlash(i.Path))
		}
	}
	return out
}

package screenreport

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"
)

// Rename moves a screenshot to its canonical name.
type Rename struct {
	From string
	To   string
}

// Plan lists the screenshots in the language directories of root whose names are not
// canonical, such as "iPhone-13--2.png" instead of "iPhone 13 2.png".
func Plan(root string) ([]Rename, error) {
	dirs, err := listDirs(root, "")
	if err != nil {
		return nil, err
	}

	rs := []Rename{}
	for _, d := range dirs {
		files, err := listFiles(filepath.Join(root, d))
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			c, ok := Canonical(f)
			if !ok || c == f {
				continue
			}
			rs = append(rs, Rename{From: filepath.Join(root, d, f), To: filepath.Join(root, d, c)})
		}
	}
	return rs, nil
}

// Apply performs renames, refusing to overwrite existing files.
func Apply(rs []Rename) error {
	for _, r := range rs {
		if _, err := os.Lstat(r.To); err == nil {
			klog.Warningf("not renaming %s: %s already exists", r.From, r.To)
			continue
		}
		klog.Infof("%s -> %s", r.From, r.To)
		if err := os.Rename(r.From, r.To); err != nil {
			return fmt.Errorf("rename: %w", err)
		}
	}
	return nil
}

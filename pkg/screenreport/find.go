package screenreport

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// imageExts are the extensions considered when walking an export tree. Matching is case-sensitive.
var imageExts = []string{".png", ".jpg"}

// bundleExts mark directories that are packages rather than folders.
var bundleExts = map[string]bool{
	".app":       true,
	".bundle":    true,
	".framework": true,
	".plugin":    true,
	".xcarchive": true,
}

// ReportDir holds generated report assets and thumbnails; it is never scanned.
const ReportDir = "_"

// nestedOut returns the report directory relative to the export directory when it lies
// inside it, so that scans can leave earlier reports out. It is "" otherwise.
func nestedOut(c *Config) string {
	in, err := filepath.Abs(c.InDir)
	if err != nil {
		return ""
	}
	out, err := filepath.Abs(c.outDir())
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(in, out)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return rel
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".") || name == ReportDir
}

func bundle(name string) bool {
	return bundleExts[filepath.Ext(name)]
}

func isImage(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}

// listDirs returns the names of the visible directories directly within root, leaving out
// exclude, a path relative to root.
func listDirs(root string, exclude string) ([]string, error) {
	des, err := godirwalk.ReadDirents(root, nil)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}
	sort.Sort(des)

	dirs := []string{}
	for _, de := range des {
		name := de.Name()
		if hidden(name) || bundle(name) || !de.IsDir() || name == exclude {
			klog.V(1).Infof("skipping %s", filepath.Join(root, name))
			continue
		}
		dirs = append(dirs, name)
	}
	return dirs, nil
}

// listFiles returns the names of the visible regular files directly within dir, sorted by name.
func listFiles(dir string) ([]string, error) {
	des, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	files := []string{}
	for _, de := range des {
		if hidden(de.Name()) || !de.IsRegular() {
			continue
		}
		files = append(files, de.Name())
	}
	sort.Strings(files)
	return files, nil
}

// walkImages returns the paths, relative to root, of every image below root. The directory
// exclude, relative to root, is not descended into.
func walkImages(root string, exclude string) ([]string, error) {
	root = filepath.Clean(root)
	found := []string{}

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path == root {
				return nil
			}

			name := filepath.Base(path)
			if hidden(name) {
				return godirwalk.SkipThis
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}

			if de.IsDir() {
				if bundle(name) || rel == exclude {
					return godirwalk.SkipThis
				}
				return nil
			}

			if !isImage(name) {
				return nil
			}

			klog.V(1).Infof("found %s", rel)
			found = append(found, rel)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(found)
	return found, nil
}

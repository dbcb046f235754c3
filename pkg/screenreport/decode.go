package screenreport

import (
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"
)

// isSeparator reports whether r separates filename tokens.
func isSeparator(r rune) bool {
	return r == ' ' || r == '-'
}

// tokens splits a filename, minus its extension, into device and number tokens.
func tokens(name string) []string {
	return strings.FieldsFunc(strings.TrimSuffix(name, filepath.Ext(name)), isSeparator)
}

// Decode parses a path relative to the export root, such as "de-DE/iPhone 13 2.png".
// It returns false if the filename has fewer than two tokens.
func Decode(rel string) (ParsedImage, bool) {
	ts := tokens(filepath.Base(rel))
	if len(ts) < 2 {
		klog.V(2).Infof("%s: not a screenshot name", rel)
		return ParsedImage{}, false
	}

	return ParsedImage{
		Path:     rel,
		Device:   strings.Join(ts[:len(ts)-1], " "),
		Number:   ts[len(ts)-1],
		Language: language(rel),
	}, true
}

// language returns the path segment directly below the export root.
func language(rel string) string {
	parts := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	if parts[0] == "." {
		return ""
	}
	return parts[0]
}

// Canonical returns the conventional spelling of a screenshot filename: device tokens
// and number joined by single spaces, extension kept.
func Canonical(name string) (string, bool) {
	ts := tokens(name)
	if len(ts) < 2 {
		return "", false
	}
	return strings.Join(ts, " ") + filepath.Ext(name), true
}

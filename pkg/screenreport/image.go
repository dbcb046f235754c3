package screenreport

import (
	"path/filepath"
)

// ParsedImage is a screenshot path decoded into its device, screen number and language.
type ParsedImage struct {
	Path     string
	Device   string
	Number   string
	Language string
}

// Image is a screenshot as shown in a report.
type Image struct {
	Path string
}

// Filename is the last path component.
func (i Image) Filename() string {
	return filepath.Base(i.Path)
}

// Caption is the name of the directory holding the image, which is its language.
func (i Image) Caption() string {
	return filepath.Base(filepath.Dir(i.Path))
}

// Group holds all screenshots for one device.
type Group struct {
	Name   string
	Images []Image
}

// Language represents one export subdirectory.
type Language struct {
	Language string
	Groups   []Group
}

// Screen represents every screenshot sharing a screen number, across languages.
type Screen struct {
	Name   string
	Groups []Group
}

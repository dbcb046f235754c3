// Package screenreport organizes exported, localized screenshots into per-language and
// per-screen groupings for a review report.
package screenreport

// Config holds configuration for screenreport.
type Config struct {
	Thumbnails  map[string]ThumbOpts
	InDir       string
	OutDir      string
	Title       string
	Description string
}

// outDir returns where the report is written; the export directory itself by default.
func (c *Config) outDir() string {
	if c.OutDir == "" {
		return c.InDir
	}
	return c.OutDir
}

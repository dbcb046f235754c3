package screenreport

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Build collects c.InDir and renders the report.
func Build(c *Config) (*Assembly, error) {
	klog.Infof("build: %s -> %s", c.InDir, c.outDir())

	a, err := Collect(c)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}

	if err := Render(c, a); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return a, nil
}

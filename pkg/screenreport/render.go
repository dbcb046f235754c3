package screenreport

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

//go:embed assets/report.tmpl
var reportTmpl string

//go:embed assets/style.css
var styleText string

//go:embed assets/script.js
var scriptText string

// cell is one screenshot in a rendered row.
type cell struct {
	Href    string
	Src     string
	Alt     string
	Caption string
	Tab     int
	Counter int
	Image   bool
}

// row is one device within a tab.
type row struct {
	Name  string
	Cells []cell
}

// tab is one screen or one language.
type tab struct {
	ID    string
	Label string
	Rows  []row
}

// Render writes the screen and language reports for a into the output directory.
func Render(c *Config, a *Assembly) error {
	out := c.outDir()
	if err := os.MkdirAll(filepath.Join(out, ReportDir), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	if err := writeAssets(out); err != nil {
		return fmt.Errorf("write assets: %w", err)
	}

	srcs, err := prepareImages(c, a)
	if err != nil {
		return fmt.Errorf("prepare images: %w", err)
	}

	if err := writePage(c, filepath.Join(out, "index.html"), screenTabs(a.Screens, srcs), "languages.html", "Browse by language"); err != nil {
		return fmt.Errorf("write screens: %w", err)
	}

	if err := writePage(c, filepath.Join(out, "languages.html"), languageTabs(a.Languages, srcs), "index.html", "Browse by screen"); err != nil {
		return fmt.Errorf("write languages: %w", err)
	}

	return nil
}

func writeAssets(outDir string) error {
	for name, text := range map[string]string{"style.css": styleText, "script.js": scriptText} {
		p := filepath.Join(outDir, ReportDir, name)
		klog.V(1).Infof("writing %s", p)
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// prepareImages copies every referenced image into the output directory and creates thumbnails.
// It returns the image source to use in the report for each image path.
func prepareImages(c *Config, a *Assembly) (map[string]string, error) {
	out := c.outDir()
	same, err := sameDir(c.InDir, out)
	if err != nil {
		return nil, err
	}

	srcs := map[string]string{}
	for _, p := range imagePaths(a) {
		updated := false
		if !same {
			updated, err = copyImage(filepath.Join(c.InDir, p), filepath.Join(out, p))
			if err != nil {
				return nil, fmt.Errorf("copy: %w", err)
			}
		}

		srcs[p] = urlPath(p)
		if _, ok := c.Thumbnails[PreviewThumb]; !ok || !isImage(p) {
			continue
		}

		ts, err := thumbnails(c.InDir, out, p, c.Thumbnails, updated)
		if err != nil {
			klog.Warningf("no preview for %s, using the full image: %v", p, err)
			continue
		}
		srcs[p] = urlPath(ts[PreviewThumb].RelPath)
	}
	return srcs, nil
}

func imagePaths(a *Assembly) []string {
	ps := []string{}
	seen := map[string]bool{}
	add := func(gs []Group) {
		for _, g := range gs {
			for _, i := range g.Images {
				if !seen[i.Path] {
					seen[i.Path] = true
					ps = append(ps, i.Path)
				}
			}
		}
	}
	for _, s := range a.Screens {
		add(s.Groups)
	}
	for _, l := range a.Languages {
		add(l.Groups)
	}
	return ps
}

func sameDir(a, b string) (bool, error) {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	ab, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return aa == ab, nil
}

// copyImage copies src to dst unless dst is already up to date. It reports whether a copy happened.
func copyImage(src, dst string) (bool, error) {
	sst, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("stat: %w", err)
	}

	dt, err := os.Stat(dst)
	switch {
	case err != nil:
		klog.V(1).Infof("updating %s: does not exist", dst)
	case sst.Size() != dt.Size():
		klog.Infof("updating %s: size mismatch", dst)
	case sst.ModTime().After(dt.ModTime()):
		klog.Infof("updating %s: source newer", dst)
	default:
		return false, nil
	}

	if err := copy.Copy(src, dst); err != nil {
		return false, err
	}
	return true, nil
}

// urlPath escapes each segment of a relative file path for use in a link.
func urlPath(p string) string {
	parts := strings.Split(filepath.ToSlash(p), "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

func screenTabs(ss []Screen, srcs map[string]string) []tab {
	ts := []tab{}
	for n, s := range ss {
		t := tab{ID: "screen-" + s.Name, Label: "Screen " + s.Name}
		t.Rows = rows(s.Groups, srcs, n+1, Image.Caption)
		ts = append(ts, t)
	}
	return ts
}

func languageTabs(ls []Language, srcs map[string]string) []tab {
	ts := []tab{}
	for n, l := range ls {
		t := tab{ID: "language-" + l.Language, Label: l.Language}
		t.Rows = rows(l.Groups, srcs, n+1, Image.Filename)
		ts = append(ts, t)
	}
	return ts
}

// rows numbers the images of a tab in display order, which the lightbox uses to advance.
// Files that are not images are shown as plain links and get no number.
func rows(gs []Group, srcs map[string]string, tabNum int, caption func(Image) string) []row {
	counter := 0
	rs := []row{}
	for _, g := range gs {
		r := row{Name: g.Name}
		for _, i := range g.Images {
			cl := cell{
				Href:    urlPath(i.Path),
				Src:     srcs[i.Path],
				Alt:     i.Filename(),
				Caption: caption(i),
				Tab:     tabNum,
				Image:   isImage(i.Path),
			}
			if cl.Image {
				cl.Counter = counter
				counter++
			}
			r.Cells = append(r.Cells, cl)
		}
		rs = append(rs, r)
	}
	return rs
}

func writePage(c *Config, path string, ts []tab, other string, otherLabel string) error {
	bs, err := renderPage(c, ts, other, otherLabel)
	if err != nil {
		return err
	}
	klog.V(1).Infof("writing %s with %d tabs", path, len(ts))
	return os.WriteFile(path, bs, 0o644)
}

func renderPage(c *Config, ts []tab, other string, otherLabel string) ([]byte, error) {
	tmpl, err := template.New("report").Parse(reportTmpl)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	data := struct {
		Title       string
		Description string
		Tabs        []tab
		Other       string
		OtherLabel  string
	}{
		Title:       c.Title,
		Description: c.Description,
		Tabs:        ts,
		Other:       other,
		OtherLabel:  otherLabel,
	}

	var tpl bytes.Buffer
	if err = tmpl.Execute(&tpl, data); err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}

	return tpl.Bytes(), nil
}

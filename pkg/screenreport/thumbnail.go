package screenreport

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"
)

// ModTimeFormat is embedded in thumbnail names so that edited screenshots get new thumbnails.
var ModTimeFormat = "150405"

// PreviewThumb is the thumbnail used as the image source in reports, when configured.
const PreviewThumb = "Preview"

// ThumbOpts are thumbnail options. A zero X or Y keeps the aspect ratio.
type ThumbOpts struct {
	X       int
	Y       int
	Quality int
}

// ThumbMeta describes a thumbnail.
type ThumbMeta struct {
	X       int
	Y       int
	RelPath string
	Path    string
}

// thumbnails creates or reuses the thumbnails of the image at rel below inDir, writing them below outDir.
func thumbnails(inDir, outDir, rel string, opts map[string]ThumbOpts, force bool) (map[string]ThumbMeta, error) {
	src := filepath.Join(inDir, rel)
	klog.V(1).Infof("creating thumbnails for %s in %s", src, outDir)

	sst, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	var img image.Image
	thumbs := map[string]ThumbMeta{}

	for name, t := range opts {
		relPath := thumbRelPath(rel, sst.ModTime(), t)
		fullPath := filepath.Join(outDir, relPath)

		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}

		st, err := os.Stat(fullPath)
		if err == nil && st.Size() > int64(128) && !force {
			rt, err := readThumb(fullPath)
			if err == nil {
				rt.RelPath = relPath
				klog.V(1).Infof("found thumb: %+v", *rt)
				thumbs[name] = *rt
				continue
			}
			klog.Warningf("unable to read thumb: %v", err)
		}

		if img == nil {
			img, err = imgio.Open(src)
			if err != nil {
				return nil, fmt.Errorf("imgio.Open: %w", err)
			}
		}

		ct, err := createThumb(img, fullPath, t)
		if err != nil {
			return nil, fmt.Errorf("create thumb: %w", err)
		}

		ct.RelPath = relPath
		thumbs[name] = *ct
	}

	return thumbs, nil
}

func createThumb(i image.Image, path string, t ThumbOpts) (*ThumbMeta, error) {
	klog.V(1).Infof("creating %dx%d thumb: %s - %+v", t.X, t.Y, path, i.Bounds())
	x := t.X
	y := t.Y

	if i.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("no Y for %s", path)
	}

	if i.Bounds().Dx() == 0 {
		return nil, fmt.Errorf("no X for %s", path)
	}

	if t.X == 0 && t.Y == 0 {
		return nil, fmt.Errorf("thumb options for %s have no size", path)
	}

	if t.X == 0 {
		scale := float64(i.Bounds().Dy()) / float64(t.Y)
		x = max(1, int(float64(i.Bounds().Dx())/scale))
	}

	if t.Y == 0 {
		scale := float64(i.Bounds().Dx()) / float64(t.X)
		y = max(1, int(float64(i.Bounds().Dy())/scale))
	}

	quality := t.Quality
	if quality == 0 {
		quality = 85
	}

	rimg := transform.Resize(i, x, y, transform.Lanczos)
	if err := imgio.Save(path, rimg, imgio.JPEGEncoder(quality)); err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}

	return &ThumbMeta{X: rimg.Bounds().Dx(), Y: rimg.Bounds().Dy(), Path: path}, nil
}

func readThumb(path string) (*ThumbMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	ic, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode: %w", err)
	}

	return &ThumbMeta{X: ic.Width, Y: ic.Height, Path: path}, nil
}

// thumbRelPath returns the path of a thumbnail relative to the report directory, for
// example "_/de-DE/iPhone 1@y360_101500.jpg".
func thumbRelPath(rel string, modTime time.Time, t ThumbOpts) string {
	base := filepath.Base(rel)
	noExt := strings.TrimSuffix(base, filepath.Ext(base))

	dimensions := ""
	if t.X != 0 {
		dimensions = fmt.Sprintf("x%d", t.X)
	}
	if t.Y != 0 {
		dimensions = fmt.Sprintf("y%d", t.Y)
	}

	newBase := fmt.Sprintf("%s@%s_%s.jpg", noExt, dimensions, modTime.Format(ModTimeFormat))
	return filepath.Join(ReportDir, filepath.Dir(rel), newBase)
}

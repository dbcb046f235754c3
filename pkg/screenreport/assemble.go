package screenreport

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"k8s.io/klog/v2"
)

// ErrNestedLanguage is returned when an image sits more than one directory below the export root,
// which leaves its language ambiguous.
var ErrNestedLanguage = errors.New("image is nested below its language directory")

// an Assembly is the pair of views built from one export directory.
type Assembly struct {
	Languages []Language
	Screens   []Screen
	Images    int
}

// Collect builds both views of c.InDir.
func Collect(c *Config) (*Assembly, error) {
	klog.Infof("collect: %s", c.InDir)

	exclude := nestedOut(c)
	if exclude != "" {
		klog.V(1).Infof("leaving report directory %s out of the scan", exclude)
	}

	ls, err := languages(c.InDir, exclude)
	if err != nil {
		return nil, fmt.Errorf("languages: %w", err)
	}

	ss, err := screens(c.InDir, exclude)
	if err != nil {
		return nil, fmt.Errorf("screens: %w", err)
	}

	seen := map[string]bool{}
	for _, l := range ls {
		for _, g := range l.Groups {
			for _, i := range g.Images {
				seen[i.Path] = true
			}
		}
	}
	for _, s := range ss {
		for _, g := range s.Groups {
			for _, i := range g.Images {
				seen[i.Path] = true
			}
		}
	}

	klog.Infof("collected %d languages and %d screens from %d images", len(ls), len(ss), len(seen))
	return &Assembly{Languages: ls, Screens: ss, Images: len(seen)}, nil
}

// Languages returns one Language per directory directly within root, sorted by name.
func Languages(root string) ([]Language, error) {
	return languages(root, "")
}

func languages(root string, exclude string) ([]Language, error) {
	dirs, err := listDirs(root, exclude)
	if err != nil {
		return nil, err
	}

	ls := make([]Language, 0, len(dirs))
	for _, d := range dirs {
		files, err := listFiles(filepath.Join(root, d))
		if err != nil {
			return nil, err
		}
		ls = append(ls, groupLanguage(d, files))
	}

	sort.Slice(ls, func(i, j int) bool {
		return ls[i].Language < ls[j].Language
	})
	return ls, nil
}

// groupLanguage decodes the files of one language directory and groups them by device.
// Within a group, images keep filename order.
func groupLanguage(lang string, files []string) Language {
	files = slices.Clone(files)
	sort.Strings(files)

	byDevice := map[string][]Image{}
	for _, f := range files {
		p, ok := Decode(filepath.Join(lang, f))
		if !ok {
			continue
		}
		byDevice[p.Device] = append(byDevice[p.Device], Image{Path: p.Path})
	}

	return Language{Language: lang, Groups: deviceGroups(byDevice)}
}

func deviceGroups(byDevice map[string][]Image) []Group {
	gs := []Group{}
	for _, d := range slices.Sorted(maps.Keys(byDevice)) {
		gs = append(gs, Group{Name: d, Images: byDevice[d]})
	}
	return gs
}

// Screens returns one Screen per distinct screen number found below root. Screens are ordered
// by number as strings, so "10" comes before "2".
func Screens(root string) ([]Screen, error) {
	return screens(root, "")
}

func screens(root string, exclude string) ([]Screen, error) {
	rels, err := walkImages(root, exclude)
	if err != nil {
		return nil, err
	}

	ps := []ParsedImage{}
	for _, rel := range rels {
		switch depth := len(strings.Split(filepath.ToSlash(rel), "/")); {
		case depth == 1:
			klog.Warningf("%s is not inside a language directory, skipping", rel)
			continue
		case depth > 2:
			return nil, fmt.Errorf("%s: %w", filepath.Join(root, rel), ErrNestedLanguage)
		}

		p, ok := Decode(rel)
		if !ok {
			continue
		}
		ps = append(ps, p)
	}

	return groupScreens(ps), nil
}

// groupScreens groups decoded images by number, then by device. Each group is sorted by
// language, since it mixes images from every language directory.
func groupScreens(ps []ParsedImage) []Screen {
	byNumber := map[string]map[string][]ParsedImage{}
	for _, p := range ps {
		if byNumber[p.Number] == nil {
			byNumber[p.Number] = map[string][]ParsedImage{}
		}
		byNumber[p.Number][p.Device] = append(byNumber[p.Number][p.Device], p)
	}

	ss := []Screen{}
	for _, n := range slices.Sorted(maps.Keys(byNumber)) {
		byDevice := map[string][]Image{}
		for d, dps := range byNumber[n] {
			sort.Slice(dps, func(i, j int) bool {
				if dps[i].Language != dps[j].Language {
					return dps[i].Language < dps[j].Language
				}
				return dps[i].Path < dps[j].Path
			})
			for _, p := range dps {
				byDevice[d] = append(byDevice[d], Image{Path: p.Path})
			}
		}
		ss = append(ss, Screen{Name: n, Groups: deviceGroups(byDevice)})
	}
	return ss
}

// screenreport builds an HTML review report from a directory of localized screenshots.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"k8s.io/klog/v2"

	"github.com/tstromberg/screenreport/pkg/manage"
	"github.com/tstromberg/screenreport/pkg/screenreport"
)

var (
	inDir       = flag.String("in", "", "Location of export directory (or SCREENREPORT_IN)")
	outDir      = flag.String("out", "", "Location of output directory, defaults to the export directory (or SCREENREPORT_OUT)")
	title       = flag.String("title", "Screenshots", "Title of the report (or SCREENREPORT_TITLE)")
	description = flag.String("description", "", "Description of the report")
	thumbs      = flag.Int("thumbs", 0, "height of preview thumbnails, 0 to show full images")
	listen      = flag.Bool("listen", false, "serve the report via HTTP")
	addr        = flag.String("addr", "localhost:12800", "host:port to bind to in listen mode (or SCREENREPORT_ADDR)")
	watchFlag   = flag.Bool("watch", false, "watch for changes to the export directory and rebuild")
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	warn  = color.New(color.FgYellow).SprintFunc()
)

// loadDotenv loads environment files, .env by default. A missing file is not an error.
func loadDotenv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// envDefault fills in a flag from the environment when it was not given.
func envDefault(name string, key string) {
	if v := os.Getenv(key); v != "" && !isSet(name) {
		if err := flag.Set(name, v); err != nil {
			klog.Exitf("%s: %v", key, err)
		}
	}
}

func isSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if err := loadDotenv(); err != nil {
		klog.V(1).Infof("unable to load .env: %v", err)
	}
	envDefault("in", "SCREENREPORT_IN")
	envDefault("out", "SCREENREPORT_OUT")
	envDefault("title", "SCREENREPORT_TITLE")
	envDefault("addr", "SCREENREPORT_ADDR")

	if *inDir == "" && flag.NArg() > 0 {
		*inDir = flag.Arg(0)
	}

	if *inDir == "" {
		klog.Exitf("--in is a required flag")
	}

	c := &screenreport.Config{
		InDir:       *inDir,
		OutDir:      *outDir,
		Title:       *title,
		Description: *description,
	}
	if *thumbs > 0 {
		c.Thumbnails = map[string]screenreport.ThumbOpts{
			screenreport.PreviewThumb: {Y: *thumbs, Quality: 85},
		}
	}

	out := c.OutDir
	if out == "" {
		out = c.InDir
	}
	s := manage.New(c, out)

	a, err := s.Rebuild()
	if err != nil {
		klog.Exitf("unable to read %s: %v", *inDir, err)
	}
	summarize(a)

	var wg sync.WaitGroup
	if *watchFlag {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := watch(s, c, a); err != nil {
				klog.Exitf("watch failed: %v", err)
			}
		}()
	}

	if *listen {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serve(s, *addr)
		}()
	}

	wg.Wait()
}

func summarize(a *screenreport.Assembly) {
	if a.Images == 0 {
		fmt.Println(warn("no screenshots found"))
		return
	}
	fmt.Printf("%s %s languages, %s screens, %s images\n", green("✓"),
		bold(len(a.Languages)), bold(len(a.Screens)), bold(a.Images))
}

// serve serves the report via HTTP
func serve(s *manage.Server, addr string) {
	klog.Infof("Listening on %s...", addr)
	if err := http.ListenAndServe(addr, s.Handler()); err != nil {
		klog.Exitf("listen failed: %v", err)
	}
}

// watchDirs returns the export directory and its language directories.
func watchDirs(c *screenreport.Config, a *screenreport.Assembly) []string {
	dirs := []string{c.InDir}
	for _, l := range a.Languages {
		dirs = append(dirs, filepath.Join(c.InDir, l.Language))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// generated reports whether path is part of a report written into the export directory.
func generated(path string) bool {
	switch filepath.Base(path) {
	case "index.html", "languages.html", screenreport.ReportDir:
		return true
	}
	return filepath.Base(filepath.Dir(path)) == screenreport.ReportDir
}

// watch watches the export directory for changes and rebuilds
func watch(s *manage.Server, c *screenreport.Config, a *screenreport.Assembly) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	dirs := watchDirs(c, a)
	klog.Infof("watching %d dirs ...", len(dirs))
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if generated(event.Name) {
				continue
			}
			klog.V(1).Infof("event: %s", event)

			a, err := s.Rebuild()
			if err != nil {
				klog.Errorf("rebuild failed: %v", err)
				continue
			}
			summarize(a)

			for _, d := range watchDirs(c, a) {
				if !slices.Contains(w.WatchList(), d) {
					if err := w.Add(d); err != nil {
						klog.Warningf("watch %s: %v", d, err)
					}
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}

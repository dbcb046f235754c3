// Package manage provides HTTP handlers for previewing and rebuilding a screenshot report.
package manage

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/tstromberg/screenreport/pkg/screenreport"
	"k8s.io/klog/v2"
)

// Server serves a rendered report.
type Server struct {
	c    *screenreport.Config
	path string
	mu   sync.Mutex
}

// New creates a new server for the report written to path.
func New(c *screenreport.Config, path string) *Server {
	server := &Server{
		c:    c,
		path: path,
	}
	return server
}

// Handler serves the report files and the rebuild endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.path)))
	mux.Handle("/_/rebuild", s.RebuildHandler())
	return mux
}

// Rebuild rescans the export directory and renders the report. Rebuilds never overlap.
func (s *Server) Rebuild() (*screenreport.Assembly, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return screenreport.Build(s.c)
}

// RebuildHandler rescans the export directory and renders the report again.
func (s *Server) RebuildHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		klog.Infof("rebuild requested by %s", r.RemoteAddr)
		a, err := s.Rebuild()
		if err != nil {
			klog.Errorf("rebuild failed: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "rebuilt %d screens in %d languages from %d images\n", len(a.Screens), len(a.Languages), a.Images)
	}
}

// Package stats serves a live dashboard of the runtime (heap, goroutines,
// GC pauses) while a session runs.
package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/pkg/errors"
)

const path = "/debug/statsview"

type Server struct {
	mgr *statsview.ViewManager
}

// Launch starts the dashboard on addr in a new goroutine. An empty addr
// returns a Server that does nothing.
func Launch(addr string, logger *slog.Logger) *Server {
	if addr == "" {
		return &Server{}
	}
	viewer.SetConfiguration(viewer.WithAddr(addr))
	s := &Server{mgr: statsview.New()}
	go func() {
		if err := s.mgr.Start(); nil != err && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("statsview stopped", "err", err)
		}
	}()
	logger.Info("stats server available", "url", "http://"+addr+path)
	return s
}

func (s *Server) Stop() {
	if nil != s.mgr {
		s.mgr.Stop()
	}
}

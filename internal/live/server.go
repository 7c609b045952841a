package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/schedlens/schedlens/internal/report"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the latest result over HTTP while watch mode runs.
type Server struct {
	addr   string
	latest *Latest
	hub    *Hub
}

// NewServer wires the HTTP surface to the given holder and hub.
func NewServer(addr string, latest *Latest, hub *Hub) *Server {
	return &Server{addr: addr, latest: latest, hub: hub}
}

// Run serves until ctx is cancelled, then shuts down gracefully and closes
// all websocket clients.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.handleProm)
	mux.HandleFunc("/api/metrics", s.handleJSON)
	mux.Handle("/ws/stream", s.hub)

	srv := &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		<-ctx.Done()
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("live: http server listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleProm(w http.ResponseWriter, r *http.Request) {
	_, res, _, ok := s.latest.Get()
	if !ok {
		http.Error(w, "no metrics computed yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", report.PromContentType)
	if err := report.RenderProm(w, res); err != nil {
		slog.Error("live: render prom", "err", err)
	}
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	name, res, updatedAt, ok := s.latest.Get()
	if !ok {
		http.Error(w, "no metrics computed yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	payload := struct {
		UpdatedAt time.Time      `json:"updated_at"`
		Metrics   report.Summary `json:"metrics"`
	}{
		UpdatedAt: updatedAt,
		Metrics:   report.NewSummary(name, res),
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("live: encode json", "err", err)
	}
}

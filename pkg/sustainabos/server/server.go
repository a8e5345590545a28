// Package server exposes the tracker queries over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/metrics"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

// Store is the query boundary the server reads from.
type Store interface {
	GetVesselSummary(name string) (models.View, error)
	GetDeviceSummary(device string) (models.View, error)
	Vessels() []string
	Devices() []string
	Summary(name string) (models.View, bool)
	SummaryNames() []string
	TopVessels(limit int) []models.VesselTotal
	Snapshot() *models.Workbook
}

// Options configures a Server.
type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// Server serves the tracker queries.
type Server struct {
	store   Store
	logger  *zap.Logger
	metrics *metrics.Metrics
	handler http.Handler
}

// New builds a server over store.
func New(store Store, opts Options) *Server {
	s := &Server{
		store:   store,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /get_vessel_summary", s.handleVesselSummary)
	mux.HandleFunc("POST /get_device_summary", s.handleDeviceSummary)
	mux.HandleFunc("GET /api/vessels", s.handleVessels)
	mux.HandleFunc("GET /api/devices", s.handleDevices)
	mux.HandleFunc("GET /api/summaries", s.handleSummaryNames)
	mux.HandleFunc("GET /api/summaries/{name}", s.handleSummary)
	mux.HandleFunc("GET /api/top-vessels", s.handleTopVessels)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	s.handler = s.withRequestLogging(mux)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// HTTPConfig holds the listener settings for Run.
type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Run serves h on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, cfg HTTPConfig, h http.Handler, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, cfg, h, logger)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, ln net.Listener, cfg HTTPConfig, h http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

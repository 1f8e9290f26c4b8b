package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Server hosts the record API.
type Server struct {
	addr    string
	handler http.Handler
	logger  *log.Logger
}

// New wires the record handler, the metrics endpoint and middleware into a [Server].
//
// CORS wraps the whole router so preflight requests are answered before route matching.
func New(cfg *shared.Config, gateway RecordGateway, importer RecordImporter, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	logger = shared.WithLogger(logger, "component", "server")

	router := NewBasicRouter()
	router.Use(
		AccessLog(logger),
		Metrics(),
		RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
	)

	router.Handler(NewRecordHandler(gateway, importer, RecordHandlerOpts{
		RequireFields:  cfg.Records.RequireFields,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Logger:         logger,
	}))
	router.Handle(http.MethodGet, "/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	router.Handle(http.MethodGet, "/metrics", promhttp.Handler())

	return &Server{
		addr:    cfg.Server.Addr(),
		handler: CORS(cfg.Server.AllowedOrigin)(router),
		logger:  logger,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

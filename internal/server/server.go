package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"github.com/yokitheyo/bracketdecode/internal/config"
	"github.com/yokitheyo/bracketdecode/notation"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg  config.ServerConfig
	srv  *http.Server
	log  *zap.Logger
}

func NewRouter(dec *notation.Decoder, maxInput int, log *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware(log))
	NewHandler(dec, maxInput, log).RegisterRoutes(router)
	return router
}

func New(cfg config.ServerConfig, dec *notation.Decoder, log *zap.Logger) *Server {
	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Handler:      NewRouter(dec, cfg.MaxInput, log),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: log,
	}
}

// Listen opens the configured address, capped at MaxConns concurrent
// connections when set.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}
	return ln, nil
}

// Serve runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", zap.String("addr", ln.Addr().String()))
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("shutting down server")
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

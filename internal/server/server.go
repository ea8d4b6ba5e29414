// Package server is a fixture HTTP server that serves recorded market data
// over the same contract the client consumes.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zappabad/tickerboard/internal/logging"
)

// Config holds configuration for the fixture server.
type Config struct {
	Addr    string
	DataDir string
	// ShutdownTimeout bounds graceful shutdown once the context is done.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1:8000",
		DataDir:         "data",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server wires the routes onto a gin engine.
type Server struct {
	cfg    Config
	store  *Store
	engine *gin.Engine
	log    zerolog.Logger
}

// New creates a Server. Routes are registered immediately.
func New(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}

	s := &Server{
		cfg:    cfg,
		store:  NewStore(cfg.DataDir),
		engine: gin.New(),
		log:    logging.Component("server"),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger(), errorMiddleware())
	s.routes()
	return s
}

func (s *Server) routes() {
	h := &handler{store: s.store}

	s.engine.GET("/", h.root)
	s.engine.GET("/sp100", h.table)
	s.engine.GET("/news", h.news)
	s.engine.GET("/ticker/:ticker", h.series)
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Str("data_dir", s.store.Dir()).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := s.log.With().Str("request_id", c.GetHeader("X-Request-ID")).Logger()
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), log))
		c.Next()

		ev := log.Debug()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

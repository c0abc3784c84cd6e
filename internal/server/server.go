// Package server exposes the CV generator over HTTP: an upload page, a
// generate endpoint that stores PDFs for later download, and a preview
// endpoint returning the HTML fragment.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/storage"
)

// Generator is the part of *md2cv.Generator the server calls.
type Generator interface {
	Parse(ctx context.Context, markdown string) (string, error)
	Generate(ctx context.Context, in md2cv.Input, outputPath string) error
}

// Server serves the HTTP API.
type Server struct {
	cfg       *Config
	version   string
	gen       Generator
	store     storage.Store
	assets    assets.AssetLoader
	logger    logrus.FieldLogger
	artifacts *retention
	scratch   string
	started   time.Time
	engine    *gin.Engine
}

// New builds a Server. Close releases its scratch directory.
func New(cfg *Config, version string, gen Generator, store storage.Store, loader assets.AssetLoader, logger logrus.FieldLogger) (*Server, error) {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	scratch, err := os.MkdirTemp("", "md2cv-server-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		version:   version,
		gen:       gen,
		store:     store,
		assets:    loader,
		logger:    logger,
		artifacts: newRetention(store, cfg.Retention, cfg.CleanupInterval, logger),
		scratch:   scratch,
		started:   time.Now(),
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(Recovery(s.logger))
	r.Use(RequestID())
	r.Use(Logger(s.logger))
	r.Use(CORS(s.cfg.Origins()))

	r.GET("/", s.index)

	api := r.Group("/api")
	api.GET("", s.apiIndex)
	api.GET("/health", s.health)
	api.GET("/template", s.template)
	api.GET("/templates", s.templates)
	api.GET("/download/:filename", s.download)

	limited := api.Group("")
	if s.cfg.Rate.Limit > 0 {
		limited.Use(RateLimit(s.cfg.Rate.Limit, s.cfg.Rate.Burst))
	}
	limited.POST("/generate", s.generate)
	limited.POST("/preview", s.preview)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found", "path": c.Request.URL.Path})
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Restore re-tracks artifacts from a previous run and removes expired ones.
func (s *Server) Restore(ctx context.Context) error {
	kept, removed, err := s.artifacts.restore(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("restoring artifacts: %w", err)
	}
	if kept > 0 || removed > 0 {
		s.logger.WithFields(logrus.Fields{"kept": kept, "removed": removed}).Info("previous artifacts restored")
	}
	return nil
}

// Run listens until ctx is canceled, then shuts down gracefully, letting
// in-flight requests finish within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"env":     s.cfg.Env,
			"storage": s.cfg.Storage,
		}).Info("server listening")
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

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// Close removes the scratch directory.
func (s *Server) Close() error {
	return os.RemoveAll(s.scratch)
}

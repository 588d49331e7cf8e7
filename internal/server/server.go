package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/chrisdamba/foodinsights/internal/analytics"
	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/store"
	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg    models.ServerConfig
	engine *analytics.Engine
	source store.Source
	now    func() time.Time
	router *gin.Engine
}

type Option func(*Server)

// WithClock fixes the time analytics are computed at.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(cfg models.ServerConfig, engine *analytics.Engine, source store.Source, opts ...Option) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("server.jwt_secret must be set")
	}
	s := &Server{
		cfg:    cfg,
		engine: engine,
		source: source,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", s.healthCheck)
		v1.GET("/analytics", AuthMiddleware(cfg.JWTSecret), s.getAnalytics)
	}
	s.router = router
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Analytics API listening on %s", s.cfg.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down analytics API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getAnalytics(c *gin.Context) {
	caller, err := CallerFrom(c)
	if err != nil {
		abortWithError(c, http.StatusForbidden, err)
		return
	}

	snap, err := s.source.Load(c.Request.Context(), analytics.ScopeFor(caller))
	if err != nil {
		log.Printf("Failed to load snapshot for %s: %v", caller.Role(), err)
		abortWithError(c, http.StatusInternalServerError, fmt.Errorf("failed to load analytics data"))
		return
	}

	payload, err := s.engine.Assemble(caller, snap, s.now())
	if err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analytics.ErrHotelNotFound):
		return http.StatusNotFound
	case errors.Is(err, analytics.ErrUnknownRole),
		errors.Is(err, analytics.ErrMissingTenant),
		errors.Is(err, analytics.ErrMissingCustomer):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Package battleapi exposes the combat resolution engine over HTTP for
// server-authoritative validation of client-side previews. The wire contract
// is JSON; the engine itself stays transport-free.
package battleapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okonen/lingoclash/internal/config"
	"github.com/okonen/lingoclash/internal/game/combat"
	"github.com/okonen/lingoclash/internal/game/vocab"
)

// Service is the HTTP resolution API. It implements server.Service.
type Service struct {
	logger          *zap.Logger
	resolver        *combat.Resolver
	tables          *combat.Store
	catalog         *vocab.Catalog
	srv             *http.Server
	shutdownTimeout time.Duration
}

// NewService builds the API around the given balance store and vocabulary
// catalog.
//
// Precondition: logger and tables must be non-nil. catalog may be nil, which
// disables item-by-ID resolution.
func NewService(cfg config.HTTPConfig, logger *zap.Logger, tables *combat.Store, catalog *vocab.Catalog) *Service {
	s := &Service{
		logger:          logger,
		resolver:        combat.NewResolver(tables),
		tables:          tables,
		catalog:         catalog,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.GET("/healthz", s.handleHealthz)
	router.POST("/v1/resolve", s.handleResolve)

	s.srv = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Name identifies the service in lifecycle logs.
func (s *Service) Name() string { return "battleapi" }

// Start serves HTTP until Stop is called.
//
// Postcondition: Returns nil on graceful shutdown, the listen error otherwise.
func (s *Service) Start() error {
	s.logger.Info("battle API listening", zap.String("addr", s.srv.Addr))
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop drains in-flight requests and closes the listener.
func (s *Service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP shutdown incomplete", zap.Error(err))
	}
}

// Handler exposes the routing tree. For tests.
func (s *Service) Handler() http.Handler { return s.srv.Handler }

// requestLogger tags every request with a UUID and logs its outcome.
func (s *Service) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-Id", requestID)
		c.Next()
		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Service) handleHealthz(c *gin.Context) {
	resp := gin.H{
		"status":          "ok",
		"balance_version": s.tables.Current().Version,
	}
	if s.catalog != nil {
		resp["vocabulary_items"] = s.catalog.Len()
	}
	c.JSON(http.StatusOK, resp)
}

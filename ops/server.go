// Package ops serves health and Prometheus endpoints for operators.
package ops

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bastionbot/bastion/logger"
)

// Server exposes /health and /metrics.
type Server struct {
	srv    *http.Server
	logger logger.Logger
}

type Params struct {
	Config Config
	Logger logger.Logger
}

// New builds the server; it does not listen until Start.
func New(p Params) *Server {
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		srv: &http.Server{
			Addr:              p.Config.Addr,
			Handler:           Router(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

// Router returns the gin engine backing the server.
func Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// Start listens in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		s.logger.InfoW("ops server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorW("ops server stopped", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

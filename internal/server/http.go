package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/tupyy/property-search-agent/api/v1"
	"github.com/tupyy/property-search-agent/internal/config"
	"github.com/tupyy/property-search-agent/internal/server/middlewares"
)

const (
	ProductionServer string = "prod"
	DevServer        string = "dev"
	apiV1            string = "/api/v1"
)

type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

func NewServer(cfg config.Server, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	switch cfg.ServerMode {
	case ProductionServer:
		gin.SetMode(gin.ReleaseMode)
	case DevServer:
		gin.SetMode(gin.DebugMode)
	default:
		return nil, fmt.Errorf("unknown server mode %q", cfg.ServerMode)
	}
	engine := gin.New()

	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, v1.Error{Error: "not_found", Message: "API endpoint not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})

	router := engine.Group(apiV1)
	router.Use(
		middlewares.Logger(),
		ginzap.RecoveryWithZap(zap.S().Desugar(), true),
	)

	registerHandlerFn(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.HTTPPort),
		Handler: engine,
	}

	return &Server{srv: srv, engine: engine}, nil
}

// Handler returns the router serving the API.
func (r *Server) Handler() http.Handler {
	return r.engine
}

// Start serves until Stop is called. It returns nil on graceful shutdown.
func (r *Server) Start(ctx context.Context) error {
	zap.S().Named("http").Infow("listening", "addr", r.srv.Addr)

	if err := r.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.S().Named("http").Errorw("failed to start server", "error", err)
		return err
	}

	return nil
}

func (r *Server) Stop(ctx context.Context) error {
	if err := r.srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("server shutdown", "error", err)
		return err
	}
	return nil
}

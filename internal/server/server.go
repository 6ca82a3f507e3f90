// Package server exposes the semantic network over a small JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/msalah0e/semnet/internal/annotation"
	"github.com/msalah0e/semnet/internal/graph"
	"github.com/msalah0e/semnet/internal/logging"
	"github.com/msalah0e/semnet/internal/survey"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop signal.
const shutdownTimeout = 5 * time.Second

// Deps are the collaborators a Server needs. Graph is required.
type Deps struct {
	Graph            *graph.Graph
	Range            graph.ThresholdRange
	DefaultThreshold float64
	TopK             int

	Annotations     *annotation.Store
	AnnotationsPath string // empty keeps annotation edits in memory

	Survey survey.Counts // nil disables /v1/survey

	Logger   *slog.Logger
	Registry *prometheus.Registry // nil creates a private registry
}

// Server is the semnet HTTP API.
type Server struct {
	deps    Deps
	log     *slog.Logger
	metrics *metrics
	engine  *gin.Engine
}

// New builds the router for deps.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	if deps.Annotations == nil {
		deps.Annotations = annotation.NewStore(annotation.Defaults())
	}
	if deps.TopK <= 0 {
		deps.TopK = graph.DefaultTopK
	}
	if deps.Range == (graph.ThresholdRange{}) {
		deps.Range = graph.DefaultRange()
	}
	deps.Range = deps.Range.Normalize()

	s := &Server{
		deps:    deps,
		log:     deps.Logger,
		metrics: newMetrics(deps.Registry),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, readTimeout)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, readTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("api listening", "addr", ln.Addr().String(),
			"nodes", len(s.deps.Graph.Nodes), "edges", len(s.deps.Graph.Edges))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("api shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())

	r.GET("/health", handleHealth)
	r.GET("/metrics", gin.WrapH(s.metrics.handler()))

	v1 := r.Group("/v1")
	{
		g := v1.Group("/graph")
		{
			g.GET("", s.handleView)
			g.GET("/edges", s.handleEdges)
			g.GET("/stats", s.handleStats)
			g.GET("/search", s.handleSearch)
		}

		a := v1.Group("/annotations")
		{
			a.GET("", s.handleListAnnotations)
			a.POST("", s.handleAddAnnotation)
			a.PATCH("/:id", s.handleRenameAnnotation)
			a.POST("/:id/reset", s.handleResetAnnotation)
			a.DELETE("/:id", s.handleRemoveAnnotation)
		}

		v1.GET("/survey", s.handleSurvey)
	}
	return r
}

// observe logs each request and counts it by route template and status.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		s.metrics.requests.WithLabelValues(route, fmt.Sprint(code)).Inc()
		s.log.Debug("request",
			"method", c.Request.Method,
			"route", route,
			"status", code,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/msalah0e/semnet/internal/annotation"
	"github.com/msalah0e/semnet/internal/graph"
)

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// threshold reads ?threshold=, falling back to the configured default.
// Out-of-range values are clamped, unparseable ones rejected.
func (s *Server) threshold(c *gin.Context) (float64, error) {
	raw := strings.TrimSpace(c.Query("threshold"))
	if raw == "" {
		return s.deps.Range.Clamp(s.deps.DefaultThreshold), nil
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("threshold %q is not a number", raw)
	}
	return s.deps.Range.Clamp(t), nil
}

func (s *Server) topK(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("top"))
	if raw == "" {
		return s.deps.TopK, nil
	}
	k, err := strconv.Atoi(raw)
	if err != nil || k < 1 {
		return 0, fmt.Errorf("top %q must be a positive integer", raw)
	}
	return k, nil
}

func (s *Server) handleView(c *gin.Context) {
	t, err := s.threshold(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	k, err := s.topK(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	start := time.Now()
	v := graph.BuildView(s.deps.Graph, s.deps.Range, t, c.Query("q"), k)
	s.metrics.statsSeconds.Observe(time.Since(start).Seconds())
	s.metrics.visibleEdges.Set(float64(len(v.Edges)))

	c.JSON(http.StatusOK, v)
}

func (s *Server) handleEdges(c *gin.Context) {
	t, err := s.threshold(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	edges := graph.FilterEdges(s.deps.Graph.Edges, t)
	s.metrics.visibleEdges.Set(float64(len(edges)))

	c.JSON(http.StatusOK, gin.H{"threshold": t, "edges": edges})
}

func (s *Server) handleStats(c *gin.Context) {
	t, err := s.threshold(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	k, err := s.topK(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	start := time.Now()
	stats := s.deps.Graph.Visible(t).Stats(k)
	s.metrics.statsSeconds.Observe(time.Since(start).Seconds())
	s.metrics.visibleEdges.Set(float64(stats.EdgeCount))

	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleSearch(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Graph.Search(c.Query("q")))
}

func (s *Server) handleSurvey(c *gin.Context) {
	if s.deps.Survey == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no survey configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":  s.deps.Survey.Total(),
		"shares": s.deps.Survey.Shares(),
	})
}

// ─── Annotations ───

type annotationRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleListAnnotations(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Annotations.List())
}

func (s *Server) handleAddAnnotation(c *gin.Context) {
	var req annotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := s.deps.Annotations.Add(req.Name, req.Color)
	if err != nil {
		s.annotationError(c, err)
		return
	}
	s.persist()
	c.JSON(http.StatusCreated, a)
}

func (s *Server) handleRenameAnnotation(c *gin.Context) {
	id, ok := annotationID(c)
	if !ok {
		return
	}
	var req annotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := s.deps.Annotations.Rename(id, req.Name)
	if err != nil {
		s.annotationError(c, err)
		return
	}
	s.persist()
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleResetAnnotation(c *gin.Context) {
	id, ok := annotationID(c)
	if !ok {
		return
	}
	a, err := s.deps.Annotations.Reset(id)
	if err != nil {
		s.annotationError(c, err)
		return
	}
	s.persist()
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleRemoveAnnotation(c *gin.Context) {
	id, ok := annotationID(c)
	if !ok {
		return
	}
	if err := s.deps.Annotations.Remove(id); err != nil {
		s.annotationError(c, err)
		return
	}
	s.persist()
	c.Status(http.StatusNoContent)
}

func annotationID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, fmt.Errorf("annotation id %q is not an integer", c.Param("id")))
		return 0, false
	}
	return id, true
}

func (s *Server) annotationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, annotation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, annotation.ErrInvalid):
		badRequest(c, err)
	default:
		s.log.Error("annotation update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// persist saves the annotation store when a path is configured. A failed
// write is logged; the in-memory edit still stands.
func (s *Server) persist() {
	if s.deps.AnnotationsPath == "" {
		return
	}
	if err := s.deps.Annotations.Save(s.deps.AnnotationsPath); err != nil {
		s.log.Warn("annotations not saved", "path", s.deps.AnnotationsPath, "error", err)
	}
}

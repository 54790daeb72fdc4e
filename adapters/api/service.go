// Package api exposes the dashboard's chart payloads and the filter
// operation as a JSON service, for front ends that render the charts
// themselves instead of using the bundled HTML dashboard.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"claimscope/domain/charts"
	"claimscope/internal"
	"claimscope/internal/analysis"
	"claimscope/internal/errors"
)

// Service is the JSON API over one analysis engine
type Service struct {
	engine *analysis.Engine
	router *gin.Engine
	log    *internal.Logger

	bundleOnce sync.Once
	bundle     *charts.Bundle
	bundleErr  error
}

// NewService creates the API service and registers its routes
func NewService(engine *analysis.Engine, mode string) *Service {
	if mode != "" {
		gin.SetMode(mode)
	}
	s := &Service{
		engine: engine,
		router: gin.New(),
		log:    internal.DefaultLogger,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Service) setupRoutes() {
	s.router.GET("/api/health", s.handleHealth)
	s.router.GET("/api/fields", s.handleFields)
	s.router.GET("/api/charts", s.handleCharts)
	s.router.GET("/api/charts/:name", s.handleChart)
	s.router.GET("/api/filter", s.handleFilter)
}

// Start serves the API on the given port, blocking until the listener fails
func (s *Service) Start(port string) error {
	s.log.Info("[API] serving JSON API on :%s", port)
	return s.router.Run(":" + port)
}

// Router exposes the underlying handler for tests
func (s *Service) Router() http.Handler {
	return s.router
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"snapshot": s.engine.Table().ID().String(),
		"rows":     s.engine.Table().Rows(),
	})
}

func (s *Service) handleFields(c *gin.Context) {
	min, max := s.engine.AgeBounds()
	c.JSON(http.StatusOK, gin.H{
		"age_min": min,
		"age_max": max,
		"filters": s.engine.Filters(),
	})
}

// chartBundle builds the static chart bundle once; the table never changes
// for the lifetime of the service
func (s *Service) chartBundle() (*charts.Bundle, error) {
	s.bundleOnce.Do(func() {
		s.bundle, s.bundleErr = s.engine.Bundle(context.Background())
	})
	return s.bundle, s.bundleErr
}

func (s *Service) handleCharts(c *gin.Context) {
	bundle, err := s.chartBundle()
	if err != nil {
		s.log.Error("[API] chart bundle failed: %v", err)
		appErr := errors.InternalError("failed to build charts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (s *Service) handleChart(c *gin.Context) {
	bundle, err := s.chartBundle()
	if err != nil {
		s.log.Error("[API] chart bundle failed: %v", err)
		appErr := errors.InternalError("failed to build charts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	payload, ok := bundle.Payload(c.Param("name"))
	if !ok {
		appErr := errors.NotFound(fmt.Sprintf("chart %q", c.Param("name")))
		c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Service) handleFilter(c *gin.Context) {
	req := s.parseFilterRequest(c)
	result := s.engine.Apply(req)
	c.JSON(http.StatusOK, newFilterResponse(result))
}

// parseFilterRequest maps query parameters onto one interaction's filter
// state. Absent or malformed values degrade to "no filter" rather than 400s;
// a stale control state must never error.
func (s *Service) parseFilterRequest(c *gin.Context) analysis.Request {
	req := s.engine.DefaultRequest()

	if v, err := strconv.ParseFloat(c.Query("age_min"), 64); err == nil {
		req.AgeMin = v
	}
	if v, err := strconv.ParseFloat(c.Query("age_max"), 64); err == nil {
		req.AgeMax = v
	}
	for _, ff := range s.engine.Filters() {
		if choice := c.Query(ff.Field.Name); choice != "" {
			req.Categories[ff.Field.Name] = choice
		}
	}
	req.ScatterGroup = c.Query("scatter_group")
	return req
}

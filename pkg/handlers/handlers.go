package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rcalderon/recruitops-api-go/pkg/database"
	"github.com/rcalderon/recruitops-api-go/pkg/matrix"
	"github.com/rcalderon/recruitops-api-go/pkg/metrics"
	"github.com/rcalderon/recruitops-api-go/pkg/models"
	"github.com/rcalderon/recruitops-api-go/pkg/sim"
)

// Handler contains dependencies for the route handlers.
type Handler struct {
	DB  *gorm.DB
	Sim *sim.Sim
}

// Routes registers every API route on the engine.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Recruiting Coverage Planner API",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/matrix/:role", h.GetMatrix)
		api.GET("/summary/:role", h.GetSummary)
		api.GET("/series/:role", h.GetSeries)

		api.GET("/planner", h.GetPlanner)
		api.PATCH("/planner", h.PatchPlanner)
		api.GET("/planner/derive", h.DeriveCriterion)
		api.POST("/planner/optimize", h.OptimizeSpend)

		api.GET("/sources", h.ListSources)
		api.POST("/sources", h.CreateSource)
		api.PUT("/sources/:id", h.UpdateSource)
		api.DELETE("/sources/:id", h.DeleteSource)
		api.GET("/sources/:id/kpis", h.SourceKPIs)

		api.PUT("/overrides/:role", h.SetOverride)
		api.DELETE("/overrides/:role", h.ClearOverrides)

		api.GET("/zones", h.GetZones)
		api.PUT("/zones", h.SetZones)

		api.GET("/usage", h.GetUsage)
	}
}

// GetMatrix returns the week grid for a role, with or without the
// campaign overlay, plus its summary aggregates.
func (h *Handler) GetMatrix(c *gin.Context) {
	role := c.Param("role")
	week, _ := strconv.Atoi(c.DefaultQuery("week", "0"))
	withCampaign := c.DefaultQuery("campaign", "true") == "true"

	metrics.RequestsTotal.WithLabelValues("matrix").Inc()
	m := h.Sim.Week(role, week, withCampaign)
	h.RecordUsage(1)

	// Adjacent-week prefetch keeps scrubbing snappy; never affects output.
	go h.Sim.Warm(role, week)

	c.JSON(http.StatusOK, gin.H{
		"matrix":  m,
		"summary": matrix.Summarize(m),
	})
}

// GetSummary returns before/after aggregates for one week.
func (h *Handler) GetSummary(c *gin.Context) {
	role := c.Param("role")
	week, _ := strconv.Atoi(c.DefaultQuery("week", "0"))

	metrics.RequestsTotal.WithLabelValues("summary").Inc()
	before := h.Sim.Summary(role, week, false)
	after := h.Sim.Summary(role, week, true)
	h.RecordUsage(2)

	zones := h.Sim.Zones.Get()
	c.JSON(http.StatusOK, gin.H{
		"before":      before,
		"after":       after,
		"before_band": zones.Band(before.CoveragePercent),
		"after_band":  zones.Band(after.CoveragePercent),
	})
}

// GetSeries returns the day-stepped long-range projection for line charts.
func (h *Handler) GetSeries(c *gin.Context) {
	role := c.Param("role")
	days, _ := strconv.Atoi(c.DefaultQuery("days", "90"))
	if days <= 0 || days > 730 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 730"})
		return
	}

	metrics.RequestsTotal.WithLabelValues("series").Inc()
	points := h.Sim.Series(role, days)
	h.RecordUsage(0)

	c.JSON(http.StatusOK, gin.H{"points": points})
}

// GetZones returns the coverage severity thresholds.
func (h *Handler) GetZones(c *gin.Context) {
	metrics.RequestsTotal.WithLabelValues("zones").Inc()
	c.JSON(http.StatusOK, h.Sim.Zones.Get())
}

// SetZones replaces the thresholds; the store forces them ascending.
func (h *Handler) SetZones(c *gin.Context) {
	var zones models.Zones
	if err := c.ShouldBindJSON(&zones); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metrics.RequestsTotal.WithLabelValues("zones").Inc()
	h.Sim.Zones.Set(zones)
	c.JSON(http.StatusOK, h.Sim.Zones.Get())
}

// RecordUsage upserts today's usage counters in a single query.
func (h *Handler) RecordUsage(matricesRequested int) {
	if h.DB == nil {
		return
	}
	today := time.Now().Format("2006-01-02")

	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":      gorm.Expr("request_count + ?", 1),
			"matrices_requested": gorm.Expr("matrices_requested + ?", matricesRequested),
		}),
	}).Create(&database.DailyUsage{
		Date:              today,
		RequestCount:      1,
		MatricesRequested: matricesRequested,
	})
}

// GetUsage returns the last 30 days of usage counters.
func (h *Handler) GetUsage(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusOK, gin.H{"usage_history": []database.DailyUsage{}})
		return
	}
	var usage []database.DailyUsage
	if err := h.DB.Order("date desc").Limit(30).Find(&usage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalMatrices int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalMatrices += int64(u.MatricesRequested)
	}

	c.JSON(http.StatusOK, gin.H{
		"usage_history": usage,
		"totals": gin.H{
			"requests": totalRequests,
			"matrices": totalMatrices,
		},
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rcalderon/recruitops-api-go/pkg/campaign"
	"github.com/rcalderon/recruitops-api-go/pkg/metrics"
	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

// ListSources returns every source record with its standalone KPIs.
func (h *Handler) ListSources(c *gin.Context) {
	metrics.RequestsTotal.WithLabelValues("sources").Inc()
	conv := h.Sim.Planner.Inputs().ConversionRate

	sources := h.Sim.Sources.All()
	out := make([]gin.H, 0, len(sources))
	for _, s := range sources {
		out = append(out, gin.H{
			"source": s,
			"kpis":   campaign.DeriveKPIs(s, conv),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sources": out})
}

// CreateSource adds a source. Missing IDs are assigned.
func (h *Handler) CreateSource(c *gin.Context) {
	var src models.Source
	if err := c.ShouldBindJSON(&src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if src.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if !validSpendModel(src.SpendModel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown spend_model"})
		return
	}

	metrics.RequestsTotal.WithLabelValues("sources").Inc()
	created := h.Sim.Sources.Add(src)
	h.RecordUsage(0)
	c.JSON(http.StatusCreated, created)
}

// UpdateSource replaces a source record.
func (h *Handler) UpdateSource(c *gin.Context) {
	var src models.Source
	if err := c.ShouldBindJSON(&src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	src.ID = c.Param("id")
	if !validSpendModel(src.SpendModel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown spend_model"})
		return
	}

	metrics.RequestsTotal.WithLabelValues("sources").Inc()
	if !h.Sim.Sources.Update(src) {
		c.JSON(http.StatusNotFound, gin.H{"error": "source not found"})
		return
	}
	h.RecordUsage(0)
	c.JSON(http.StatusOK, src)
}

// DeleteSource removes a source record.
func (h *Handler) DeleteSource(c *gin.Context) {
	metrics.RequestsTotal.WithLabelValues("sources").Inc()
	if !h.Sim.Sources.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "source not found"})
		return
	}
	h.RecordUsage(0)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SourceKPIs returns one source's theoretical standalone output.
func (h *Handler) SourceKPIs(c *gin.Context) {
	src, ok := h.Sim.Sources.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "source not found"})
		return
	}
	metrics.RequestsTotal.WithLabelValues("sources").Inc()
	conv := h.Sim.Planner.Inputs().ConversionRate
	c.JSON(http.StatusOK, campaign.DeriveKPIs(src, conv))
}

func validSpendModel(m models.SpendModel) bool {
	switch m {
	case models.SpendOrganic, models.SpendDailyBudget, models.SpendCPC,
		models.SpendCPM, models.SpendCPA, models.SpendReferral:
		return true
	}
	return false
}

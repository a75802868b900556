package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rcalderon/recruitops-api-go/pkg/metrics"
	"github.com/rcalderon/recruitops-api-go/pkg/models"
	"github.com/rcalderon/recruitops-api-go/pkg/store"
)

// SetOverride upserts a user slot edit. Sending demand=0 and supply=0
// removes the override, reverting the slot to the generated baseline.
func (h *Handler) SetOverride(c *gin.Context) {
	var body struct {
		Week   int `json:"week"`
		Day    int `json:"day"`
		Slot   int `json:"slot"`
		Demand int `json:"demand"`
		Supply int `json:"supply"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Day < 0 || body.Day >= models.DaysPerWeek || body.Slot < 0 || body.Slot >= models.SlotsPerDay {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day or slot out of range"})
		return
	}

	metrics.RequestsTotal.WithLabelValues("overrides").Inc()
	role := c.Param("role")
	h.Sim.Overrides.Set(role, body.Week, body.Day, body.Slot, store.OverridePair{
		Demand: body.Demand,
		Supply: body.Supply,
	})
	h.RecordUsage(0)

	c.JSON(http.StatusOK, gin.H{
		"has_override": h.Sim.Overrides.Has(role, body.Week, body.Day, body.Slot),
		"count":        h.Sim.Overrides.Len(),
	})
}

// ClearOverrides removes overrides for a role: one slot when week, day
// and slot are all given, a whole week when only week is given, or every
// override for the role otherwise.
func (h *Handler) ClearOverrides(c *gin.Context) {
	metrics.RequestsTotal.WithLabelValues("overrides").Inc()
	role := c.Param("role")

	weekStr, hasWeek := c.GetQuery("week")
	dayStr, hasDay := c.GetQuery("day")
	slotStr, hasSlot := c.GetQuery("slot")

	switch {
	case hasWeek && hasDay && hasSlot:
		week, _ := strconv.Atoi(weekStr)
		day, _ := strconv.Atoi(dayStr)
		slot, _ := strconv.Atoi(slotStr)
		h.Sim.Overrides.Clear(role, week, day, slot)
	case hasWeek:
		week, _ := strconv.Atoi(weekStr)
		h.Sim.Overrides.ClearWeek(role, week)
	default:
		h.Sim.Overrides.ClearRole(role)
	}
	h.RecordUsage(0)

	c.JSON(http.StatusOK, gin.H{"count": h.Sim.Overrides.Len()})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rcalderon/recruitops-api-go/pkg/campaign"
	"github.com/rcalderon/recruitops-api-go/pkg/metrics"
	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

// plannerView is the planner state plus every derivation the summary
// panels consume, so one round trip keeps all views in agreement.
func (h *Handler) plannerView() gin.H {
	p := h.Sim.Planner
	in := p.Inputs()

	apps := p.ApplicantsPerDay()
	hpd := p.HiresPerDay()
	metrics.ApplicantsPerDay.Set(apps)
	metrics.HiresPerDay.Set(hpd)

	view := gin.H{
		"planner":             in,
		"live_view":           p.LiveView(),
		"applicants_per_day":  apps,
		"hires_per_day":       hpd,
		"max_daily_spend_cap": p.MaxDailySpendCap(),
	}
	if in.StartDate != nil {
		view["derived"] = p.Derive(campaign.DeriveRequest{
			StartISO:   *in.StartDate,
			EndType:    in.EndType,
			EndValue:   in.EndValue,
			DailySpend: in.DailySpend,
		})
	}
	return view
}

// GetPlanner returns the campaign configuration and its derivations.
func (h *Handler) GetPlanner(c *gin.Context) {
	metrics.RequestsTotal.WithLabelValues("planner").Inc()
	c.JSON(http.StatusOK, h.plannerView())
}

// plannerPatchBody is the JSON merge-patch for the planner. Explicit
// null for start_date or end_value clears the field.
type plannerPatchBody struct {
	StartDate      *string         `json:"start_date"`
	ClearStartDate bool            `json:"clear_start_date"`
	EndType        *models.EndType `json:"end_type"`
	EndValue       *float64        `json:"end_value"`
	ClearEndValue  bool            `json:"clear_end_value"`
	DailySpend     *float64        `json:"daily_spend"`
	ConversionRate *float64        `json:"conversion_rate"`
	Role           *string         `json:"role"`
	LiveView       *bool           `json:"live_view"`
}

// PatchPlanner merges a partial update into the campaign configuration.
func (h *Handler) PatchPlanner(c *gin.Context) {
	var body plannerPatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.RequestsTotal.WithLabelValues("planner").Inc()
	h.Sim.Planner.Apply(campaign.Patch{
		StartDate:      body.StartDate,
		ClearStartDate: body.ClearStartDate,
		EndType:        body.EndType,
		EndValue:       body.EndValue,
		ClearEndValue:  body.ClearEndValue,
		DailySpend:     body.DailySpend,
		ConversionRate: body.ConversionRate,
		Role:           body.Role,
		LiveView:       body.LiveView,
	})
	h.RecordUsage(0)

	c.JSON(http.StatusOK, h.plannerView())
}

// DeriveCriterion projects the other two end criteria from the one given,
// without touching the stored plan. Lets the UI render three agreeing
// radio options where only one is live-edited.
func (h *Handler) DeriveCriterion(c *gin.Context) {
	var req struct {
		Start      string  `form:"start"`
		EndType    string  `form:"end_type"`
		EndValue   float64 `form:"end_value"`
		DailySpend float64 `form:"daily_spend"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.RequestsTotal.WithLabelValues("derive").Inc()
	v := req.EndValue
	derived := h.Sim.Planner.Derive(campaign.DeriveRequest{
		StartISO:   req.Start,
		EndType:    models.EndType(req.EndType),
		EndValue:   &v,
		DailySpend: req.DailySpend,
	})
	c.JSON(http.StatusOK, derived)
}

// OptimizeSpend answers "what daily spend meets this hire rate".
func (h *Handler) OptimizeSpend(c *gin.Context) {
	var req struct {
		TargetHiresPerDay float64 `json:"target_hires_per_day"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.RequestsTotal.WithLabelValues("optimize").Inc()
	spend, ok := campaign.OptimizeDailySpend(h.Sim.Planner, req.TargetHiresPerDay)
	c.JSON(http.StatusOK, gin.H{
		"daily_spend": spend,
		"achievable":  ok,
	})
}

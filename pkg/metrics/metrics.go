// Package metrics provides Prometheus observability for the coverage
// planner: request volume, matrix generation work, and the headline
// simulation numbers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the service.
var Registry = prometheus.NewRegistry()

// factory registers metrics against our Registry directly.
var factory = promauto.With(Registry)

// RequestsTotal counts API requests by route.
var RequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "recruitops",
	Name:      "requests_total",
	Help:      "Total API requests served, by route",
}, []string{"route"})

// MatricesGenerated counts week matrices built from scratch.
var MatricesGenerated = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "recruitops",
	Name:      "matrices_generated_total",
	Help:      "Week matrices generated (cache misses that did real work)",
})

// MatrixCacheHits counts memoized matrix lookups.
var MatrixCacheHits = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "recruitops",
	Name:      "matrix_cache_hits_total",
	Help:      "Week matrix cache hits",
})

// MatrixCacheMisses counts matrix lookups that had to generate.
var MatrixCacheMisses = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "recruitops",
	Name:      "matrix_cache_misses_total",
	Help:      "Week matrix cache misses",
})

// DemandHalfHours tracks total demanded half-hour units of the most
// recently generated week.
var DemandHalfHours = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "recruitops",
	Name:      "demand_half_hours",
	Help:      "Demanded half-hour labor units in the last generated week",
})

// SupplyHalfHours tracks total scheduled half-hour units of the most
// recently generated week.
var SupplyHalfHours = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "recruitops",
	Name:      "supply_half_hours",
	Help:      "Scheduled half-hour labor units in the last generated week",
})

// CoveragePercent tracks the average coverage of the most recently
// generated week.
var CoveragePercent = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "recruitops",
	Name:      "coverage_percent",
	Help:      "Average coverage percentage of the last generated week",
})

// ApplicantsPerDay tracks the blended applicant rate after the last
// planner change.
var ApplicantsPerDay = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "recruitops",
	Name:      "applicants_per_day",
	Help:      "Blended applicants/day under the current plan",
})

// HiresPerDay tracks the blended hire rate after the last planner change.
var HiresPerDay = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "recruitops",
	Name:      "hires_per_day",
	Help:      "Blended hires/day under the current plan",
})

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meal-concierge/internal/app"
	"meal-concierge/internal/catalog"
	"meal-concierge/internal/logger"
	"meal-concierge/internal/planner"
)

const (
	seedPreviewSize    = 30
	defaultMetricsDays = 7
)

// Concierge is the application surface the HTTP API exposes.
type Concierge interface {
	GeneratePlan(ctx context.Context, req app.PlanRequest) (*planner.MealPlan, error)
	SampleItems(n int) []catalog.MenuItem
	ReloadCatalog(ctx context.Context) (int, error)
	Metrics(ctx context.Context, days int) (*app.MetricsReport, error)
}

// Handler serves the plan, catalog and admin endpoints.
type Handler struct {
	concierge Concierge
	log       *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(concierge Concierge, log *logger.Logger) *Handler {
	return &Handler{concierge: concierge, log: log.With("component", "api")}
}

// HealthCheck answers liveness probes.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Plan builds a meal plan from query parameters. Bad parameter values fall back to defaults.
func (h *Handler) Plan(c *gin.Context) {
	var req app.PlanRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	plan, err := h.concierge.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, planner.ErrNoCatalog) {
			RespondError(c, http.StatusServiceUnavailable, "no_catalog", err)
			return
		}
		h.log.Error("plan generation failed", "error", err)
		RespondInternalError(c, "internal")
		return
	}
	RespondOK(c, plan)
}

// Seed lists the first catalog items.
func (h *Handler) Seed(c *gin.Context) {
	RespondOK(c, h.concierge.SampleItems(seedPreviewSize))
}

// ReloadCatalog rebuilds the in-memory catalog from storage.
func (h *Handler) ReloadCatalog(c *gin.Context) {
	n, err := h.concierge.ReloadCatalog(c.Request.Context())
	if err != nil {
		h.log.Error("catalog reload failed", "error", err)
		RespondInternalError(c, "reload_failed")
		return
	}
	RespondOK(c, gin.H{"items": n})
}

// Metrics returns usage, plan statistics and system health.
func (h *Handler) Metrics(c *gin.Context) {
	days := defaultMetricsDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			RespondError(c, http.StatusBadRequest, "bad_request", errors.New("days must be a positive integer"))
			return
		}
		days = n
	}

	report, err := h.concierge.Metrics(c.Request.Context(), days)
	if err != nil {
		h.log.Error("metrics query failed", "error", err)
		RespondInternalError(c, "internal")
		return
	}
	RespondOK(c, report)
}

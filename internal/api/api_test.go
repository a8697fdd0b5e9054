package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"meal-concierge/internal/app"
	"meal-concierge/internal/auth"
	"meal-concierge/internal/catalog"
	"meal-concierge/internal/logger"
	"meal-concierge/internal/metrics"
	"meal-concierge/internal/nutrition"
	"meal-concierge/internal/planner"
)

type fakeConcierge struct {
	lastReq    app.PlanRequest
	planErr    error
	reloads    int
	metricDays int
}

func (f *fakeConcierge) GeneratePlan(ctx context.Context, req app.PlanRequest) (*planner.MealPlan, error) {
	f.lastReq = req
	if f.planErr != nil {
		return nil, f.planErr
	}
	return &planner.MealPlan{ID: "p1", Targets: nutrition.MacroTargets(1800, 158), MealsPerDay: 3}, nil
}

func (f *fakeConcierge) SampleItems(n int) []catalog.MenuItem {
	items := catalog.SeedItems()
	if n < len(items) {
		items = items[:n]
	}
	return items
}

func (f *fakeConcierge) ReloadCatalog(ctx context.Context) (int, error) {
	f.reloads++
	return 54, nil
}

func (f *fakeConcierge) Metrics(ctx context.Context, days int) (*app.MetricsReport, error) {
	f.metricDays = days
	return &app.MetricsReport{CatalogItems: 54, Plans: metrics.PlanStats{Runs: 2}}, nil
}

func newTestRouter(t *testing.T, c Concierge) (*gin.Engine, *auth.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	issuer, err := auth.NewIssuer("test-secret", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	log := logger.NewNop()
	return NewRouter(RouterConfig{
		Handler:        NewHandler(c, log),
		Verifier:       issuer,
		Log:            log,
		AllowedOrigins: []string{"http://localhost:3000"},
	}), issuer
}

func do(r http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid error envelope %q: %v", rec.Body.String(), err)
	}
	return env.Error
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t, &fakeConcierge{})
	rec := do(r, http.MethodGet, "/healthcheck", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthcheck: want=200 %q got=%d %q", "ok", rec.Code, rec.Body.String())
	}
}

func TestPlan(t *testing.T) {
	t.Run("binds query parameters", func(t *testing.T) {
		c := &fakeConcierge{}
		r, _ := newTestRouter(t, c)

		rec := do(r, http.MethodGet, "/plan?calories=1800&meals_per_day=2&cuisine=mexican&protein_strategy=per_lb&weight_lb=180&seed=5", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("plan: want=200 got=%d body=%s", rec.Code, rec.Body.String())
		}
		want := app.PlanRequest{Calories: "1800", MealsPerDay: "2", Cuisine: "mexican", ProteinStrategy: "per_lb", WeightLb: "180", Seed: "5"}
		if c.lastReq != want {
			t.Errorf("request: want=%+v got=%+v", want, c.lastReq)
		}

		var plan planner.MealPlan
		if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
			t.Fatal(err)
		}
		if plan.ID != "p1" || plan.Targets.Calories != 1800 {
			t.Errorf("unexpected plan body: %+v", plan)
		}
	})

	t.Run("no catalog", func(t *testing.T) {
		r, _ := newTestRouter(t, &fakeConcierge{planErr: planner.ErrNoCatalog})
		rec := do(r, http.MethodGet, "/plan", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status: want=%d got=%d", http.StatusServiceUnavailable, rec.Code)
		}
		if e := decodeError(t, rec); e.Code != "no_catalog" {
			t.Errorf("code: want=%q got=%q", "no_catalog", e.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		r, _ := newTestRouter(t, &fakeConcierge{planErr: errors.New("sqlite: disk I/O error at /data/concierge.db")})
		rec := do(r, http.MethodGet, "/plan", "")
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status: want=%d got=%d", http.StatusInternalServerError, rec.Code)
		}
		e := decodeError(t, rec)
		if e.Code != "internal" || e.Message != "internal server error" {
			t.Errorf("error: want internal/%q got=%+v", "internal server error", e)
		}
		if strings.Contains(rec.Body.String(), "sqlite") {
			t.Errorf("body leaks internal error: %s", rec.Body.String())
		}
	})
}

func TestSeed(t *testing.T) {
	r, _ := newTestRouter(t, &fakeConcierge{})
	rec := do(r, http.MethodGet, "/seed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("seed: want=200 got=%d", rec.Code)
	}
	var items []catalog.MenuItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != seedPreviewSize {
		t.Errorf("items: want=%d got=%d", seedPreviewSize, len(items))
	}
}

func TestAdminRoutes(t *testing.T) {
	c := &fakeConcierge{}
	r, issuer := newTestRouter(t, c)
	token, err := issuer.IssueAdminToken()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("reload requires token", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/admin/catalog/reload", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: want=401 got=%d", rec.Code)
		}
		if e := decodeError(t, rec); e.Code != "unauthorized" {
			t.Errorf("code: want=%q got=%q", "unauthorized", e.Code)
		}
		if c.reloads != 0 {
			t.Errorf("reloads: want=0 got=%d", c.reloads)
		}
	})

	t.Run("reload rejects bad token", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/admin/catalog/reload", "not-a-token")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: want=401 got=%d", rec.Code)
		}
	})

	t.Run("reload with token", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/admin/catalog/reload", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
		}
		var body struct {
			Items int `json:"items"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.Items != 54 || c.reloads != 1 {
			t.Errorf("reload: want items=54 reloads=1 got items=%d reloads=%d", body.Items, c.reloads)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/admin/metrics?days=30", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("status: want=200 got=%d", rec.Code)
		}
		if c.metricDays != 30 {
			t.Errorf("days: want=30 got=%d", c.metricDays)
		}
		var report app.MetricsReport
		if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
			t.Fatal(err)
		}
		if report.Plans.Runs != 2 {
			t.Errorf("runs: want=2 got=%d", report.Plans.Runs)
		}
	})

	t.Run("metrics rejects bad days", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/admin/metrics?days=zero", token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: want=400 got=%d", rec.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	r, _ := newTestRouter(t, &fakeConcierge{})
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin: want=%q got=%q", "http://localhost:3000", got)
	}
}

package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"meal-concierge/internal/catalog"
	"meal-concierge/internal/coach"
	"meal-concierge/internal/config"
	"meal-concierge/internal/database"
	"meal-concierge/internal/llm"
	"meal-concierge/internal/logger"
	"meal-concierge/internal/metrics"
	"meal-concierge/internal/planner"
	"meal-concierge/internal/shared"
)

type mockTextGen struct {
	res   string
	err   error
	calls int
}

func (m *mockTextGen) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.calls++
	return llm.ContentResponse{
		Content: m.res,
		Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 5, Model: "mock"},
	}, m.err
}

type fixture struct {
	app     *App
	repo    *catalog.Repository
	metrics *metrics.Store
}

func newFixture(t *testing.T, c *coach.Coach) fixture {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "concierge.db")
	db, err := database.NewDB(dbPath, logger.NewNop())
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{DatabasePath: dbPath, DefaultDays: 3, DefaultMealsPerDay: 3}
	repo := catalog.NewRepository(db.SQL)
	store := metrics.NewStore(db.SQL)
	a := NewApp(cfg, logger.NewNop(), repo, store, planner.NewPlanner(planner.DefaultWeights(), nil), c)
	return fixture{app: a, repo: repo, metrics: store}
}

func TestGeneratePlanWithoutCatalog(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.app.GeneratePlan(context.Background(), PlanRequest{})
	if !errors.Is(err, planner.ErrNoCatalog) {
		t.Errorf("Expected ErrNoCatalog, got %v", err)
	}
}

func TestGeneratePlan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	if _, err := f.app.ReloadCatalog(ctx); err != nil {
		t.Fatalf("ReloadCatalog failed: %v", err)
	}

	t.Run("defaults", func(t *testing.T) {
		plan, err := f.app.GeneratePlan(ctx, PlanRequest{})
		if err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}
		if len(plan.Plan) != 3 || plan.MealsPerDay != 3 {
			t.Errorf("Expected 3 days of 3 meals, got %d/%d", len(plan.Plan), plan.MealsPerDay)
		}
		if plan.Targets.Calories != 1500 {
			t.Errorf("Expected 1500 kcal from the fallback TDEE, got %d", plan.Targets.Calories)
		}
		if plan.Note != "Fallback: TDEE defaulted to 2000" {
			t.Errorf("Unexpected note: %q", plan.Note)
		}
	})

	t.Run("explicit values are clamped", func(t *testing.T) {
		plan, err := f.app.GeneratePlan(ctx, PlanRequest{Calories: "1800", Days: "30", MealsPerDay: "0"})
		if err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}
		if len(plan.Plan) != MaxDays {
			t.Errorf("Expected %d days, got %d", MaxDays, len(plan.Plan))
		}
		if plan.MealsPerDay != 1 {
			t.Errorf("Expected 1 meal per day, got %d", plan.MealsPerDay)
		}
		for _, d := range plan.Plan {
			if len(d.Items) != 1 {
				t.Errorf("Day %d: expected 1 item, got %d", d.Day, len(d.Items))
			}
		}
	})

	t.Run("same seed same plan", func(t *testing.T) {
		req := PlanRequest{Calories: "2200", Cuisine: "mex", Seed: "99"}
		first, err := f.app.GeneratePlan(ctx, req)
		if err != nil {
			t.Fatal(err)
		}
		second, err := f.app.GeneratePlan(ctx, req)
		if err != nil {
			t.Fatal(err)
		}
		if first.Seed != 99 || second.Seed != 99 {
			t.Errorf("Expected seed 99, got %d and %d", first.Seed, second.Seed)
		}
		for i := range first.Plan {
			if first.Plan[i].Totals != second.Plan[i].Totals {
				t.Errorf("Day %d differs: %+v vs %+v", i+1, first.Plan[i].Totals, second.Plan[i].Totals)
			}
		}
	})

	t.Run("records plan runs", func(t *testing.T) {
		st, err := f.metrics.GetPlanStats(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if st.Runs != 4 {
			t.Errorf("Expected 4 recorded runs, got %d", st.Runs)
		}
	})
}

func TestGeneratePlanCoach(t *testing.T) {
	ctx := context.Background()

	t.Run("note attached", func(t *testing.T) {
		gen := &mockTextGen{res: "Swap the fries for a side salad."}
		f := newFixture(t, coach.New(gen))
		if _, err := f.app.ReloadCatalog(ctx); err != nil {
			t.Fatal(err)
		}

		plan, err := f.app.GeneratePlan(ctx, PlanRequest{Calories: "1800"})
		if err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}
		if plan.CoachNote != "Swap the fries for a side salad." {
			t.Errorf("Unexpected coach note: %q", plan.CoachNote)
		}
		usage, err := f.metrics.GetDailyUsage(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(usage) != 1 || usage[0].TotalExecution != 1 {
			t.Errorf("Expected one coach execution recorded, got %+v", usage)
		}
	})

	t.Run("coach failure still returns plan", func(t *testing.T) {
		gen := &mockTextGen{err: errors.New("rate limited")}
		f := newFixture(t, coach.New(gen))
		if _, err := f.app.ReloadCatalog(ctx); err != nil {
			t.Fatal(err)
		}

		plan, err := f.app.GeneratePlan(ctx, PlanRequest{})
		if err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}
		if plan.CoachNote != "" {
			t.Errorf("Expected empty coach note, got %q", plan.CoachNote)
		}
		if gen.calls != 1 {
			t.Errorf("Expected 1 coach call, got %d", gen.calls)
		}
	})
}

func TestCatalogLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	if got := f.app.SampleItems(5); len(got) != 0 {
		t.Errorf("Expected no items before load, got %d", len(got))
	}

	n, err := f.app.ReloadCatalog(ctx)
	if err != nil {
		t.Fatalf("ReloadCatalog failed: %v", err)
	}
	seedCount := len(catalog.SeedItems())
	if n != seedCount {
		t.Errorf("Expected %d seed items, got %d", seedCount, n)
	}

	t.Run("sample items", func(t *testing.T) {
		if got := f.app.SampleItems(30); len(got) != 30 {
			t.Errorf("Expected 30 items, got %d", len(got))
		}
	})

	t.Run("import adds items", func(t *testing.T) {
		body := `[{"name":"Test Bowl","chain":"Test Kitchen","cuisine":"test","calories":500,"protein_g":40,"carbs_g":50,"fat_g":15}]`
		imported, err := f.app.ImportCatalog(ctx, strings.NewReader(body))
		if err != nil {
			t.Fatalf("ImportCatalog failed: %v", err)
		}
		if imported != 1 {
			t.Errorf("Expected 1 imported item, got %d", imported)
		}
		if f.app.Catalog().Len() != seedCount+1 {
			t.Errorf("Expected %d items after import, got %d", seedCount+1, f.app.Catalog().Len())
		}
	})

	t.Run("import rejects invalid batch", func(t *testing.T) {
		body := `[{"name":"Ok","chain":"X","calories":100},{"name":"","chain":"X","calories":100}]`
		_, err := f.app.ImportCatalog(ctx, strings.NewReader(body))
		if !errors.Is(err, catalog.ErrInvalidItem) {
			t.Errorf("Expected ErrInvalidItem, got %v", err)
		}
		if f.app.Catalog().Len() != seedCount+1 {
			t.Errorf("Expected catalog unchanged, got %d items", f.app.Catalog().Len())
		}
	})

	t.Run("seed catalog is idempotent", func(t *testing.T) {
		if _, err := f.app.SeedCatalog(ctx); err != nil {
			t.Fatalf("SeedCatalog failed: %v", err)
		}
		if f.app.Catalog().Len() != seedCount+1 {
			t.Errorf("Expected %d items after seeding, got %d", seedCount+1, f.app.Catalog().Len())
		}
	})
}

func TestMetricsReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	if _, err := f.app.ReloadCatalog(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.app.GeneratePlan(ctx, PlanRequest{Days: "1"}); err != nil {
		t.Fatal(err)
	}

	report, err := f.app.Metrics(ctx, 7)
	if err != nil {
		t.Fatalf("Metrics failed: %v", err)
	}
	if report.Plans.Runs != 1 {
		t.Errorf("Expected 1 plan run, got %d", report.Plans.Runs)
	}
	if report.CatalogItems != len(catalog.SeedItems()) {
		t.Errorf("Expected catalog size in report, got %d", report.CatalogItems)
	}

	if _, err := f.app.CleanupMetrics(ctx, 0); err == nil {
		t.Error("Expected error for zero retention")
	}
	if _, err := f.app.CleanupMetrics(ctx, 30); err != nil {
		t.Errorf("CleanupMetrics failed: %v", err)
	}
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 3},
		{"abc", 3},
		{"2", 2},
		{" 4 ", 4},
		{"0", 1},
		{"-5", 1},
		{"99", 6},
	}
	for _, tt := range tests {
		if got := clampCount(tt.raw, 3, 6); got != tt.want {
			t.Errorf("clampCount(%q): want=%d got=%d", tt.raw, tt.want, got)
		}
	}
}

func TestRequestFromMap(t *testing.T) {
	req := RequestFromMap(map[string]string{"calories": "1800", "meals_per_day": "2", "cuisine": "thai", "bogus": "x"})
	if req.Calories != "1800" || req.MealsPerDay != "2" || req.Cuisine != "thai" {
		t.Errorf("Unexpected request: %+v", req)
	}
}

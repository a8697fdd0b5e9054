package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"meal-concierge/internal/catalog"
	"meal-concierge/internal/coach"
	"meal-concierge/internal/config"
	"meal-concierge/internal/logger"
	"meal-concierge/internal/metrics"
	"meal-concierge/internal/planner"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	log          *logger.Logger
	catalogRepo  *catalog.Repository
	metricsStore *metrics.Store
	mealPlanner  *planner.Planner
	coach        *coach.Coach

	catalog atomic.Pointer[catalog.Catalog]
}

// NewApp creates and initializes a new App instance. coach may be nil.
// No catalog is loaded until ReloadCatalog succeeds.
func NewApp(
	cfg *config.Config,
	log *logger.Logger,
	catalogRepo *catalog.Repository,
	metricsStore *metrics.Store,
	mealPlanner *planner.Planner,
	planCoach *coach.Coach,
) *App {
	return &App{
		cfg:          cfg,
		log:          log,
		catalogRepo:  catalogRepo,
		metricsStore: metricsStore,
		mealPlanner:  mealPlanner,
		coach:        planCoach,
	}
}

// Catalog returns the current catalog snapshot, or nil before the first load.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog.Load()
}

// ReloadCatalog rebuilds the catalog from the seed menu plus stored items and swaps it in.
// Requests already holding the previous snapshot are unaffected.
func (a *App) ReloadCatalog(ctx context.Context) (int, error) {
	cat, err := a.catalogRepo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reload catalog: %w", err)
	}
	a.catalog.Store(cat)
	a.log.Info("catalog loaded", "items", cat.Len())
	return cat.Len(), nil
}

// SampleItems returns the first n catalog items.
func (a *App) SampleItems(n int) []catalog.MenuItem {
	cat := a.catalog.Load()
	if cat == nil {
		return []catalog.MenuItem{}
	}
	return cat.Head(n)
}

// SeedCatalog stores the built-in seed menu and reloads.
func (a *App) SeedCatalog(ctx context.Context) (int, error) {
	items := catalog.SeedItems()
	if err := a.catalogRepo.Save(ctx, items); err != nil {
		return 0, fmt.Errorf("failed to save seed menu: %w", err)
	}
	if _, err := a.ReloadCatalog(ctx); err != nil {
		return 0, err
	}
	return len(items), nil
}

// ImportCatalog reads a JSON array of menu items, stores them and reloads.
// The whole batch is rejected if any item is invalid.
func (a *App) ImportCatalog(ctx context.Context, r io.Reader) (int, error) {
	var items []catalog.MenuItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return 0, fmt.Errorf("failed to decode menu items: %w", err)
	}
	if _, err := catalog.New(items); err != nil {
		return 0, err
	}
	if err := a.catalogRepo.Save(ctx, items); err != nil {
		return 0, fmt.Errorf("failed to save menu items: %w", err)
	}
	if _, err := a.ReloadCatalog(ctx); err != nil {
		return 0, err
	}
	return len(items), nil
}

// GeneratePlan resolves targets from req and assembles a plan from the current catalog.
// It only fails when no catalog has been loaded.
func (a *App) GeneratePlan(ctx context.Context, req PlanRequest) (*planner.MealPlan, error) {
	start := time.Now()

	targets, note := resolveTargets(req)
	seed := req.seed()

	plan, err := a.mealPlanner.Assemble(a.catalog.Load(), planner.Request{
		Targets:     targets,
		Note:        note,
		Cuisine:     req.Cuisine,
		Chain:       req.Chain,
		Days:        clampCount(req.Days, a.cfg.DefaultDays, MaxDays),
		MealsPerDay: clampCount(req.MealsPerDay, a.cfg.DefaultMealsPerDay, MaxMealsPerDay),
	}, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return nil, err
	}
	plan.Seed = seed
	latency := time.Since(start)

	if err := a.metricsStore.RecordPlanRun(ctx, metrics.PlanRun{
		PlanID:           plan.ID,
		CalorieTarget:    plan.Targets.Calories,
		Days:             len(plan.Plan),
		MealsPerDay:      plan.MealsPerDay,
		PoolSize:         plan.PoolSize,
		MeanScore:        plan.MeanScore(),
		MeanCalorieError: plan.MeanCalorieError(),
		LatencyMS:        latency.Milliseconds(),
	}); err != nil {
		a.log.Warn("failed to record plan run", "plan_id", plan.ID, "error", err)
	}

	if a.coach != nil {
		a.attachCoachNote(ctx, plan)
	}

	a.log.Info("plan generated",
		"plan_id", plan.ID,
		"calories", plan.Targets.Calories,
		"days", len(plan.Plan),
		"meals_per_day", plan.MealsPerDay,
		"pool_size", plan.PoolSize,
		"latency_ms", latency.Milliseconds(),
	)
	return plan, nil
}

func (a *App) attachCoachNote(ctx context.Context, plan *planner.MealPlan) {
	note, meta, err := a.coach.Advise(ctx, plan)
	if recErr := a.metricsStore.RecordMeta(ctx, meta); recErr != nil {
		a.log.Warn("failed to record coach metrics", "error", recErr)
	}
	if err != nil {
		a.log.Warn("coach note skipped", "plan_id", plan.ID, "error", err)
		return
	}
	plan.CoachNote = note
}

// MetricsReport is the admin view of usage, plan quality and process health.
type MetricsReport struct {
	CatalogItems int                  `json:"catalog_items"`
	Usage        []metrics.DailyUsage `json:"usage"`
	Plans        metrics.PlanStats    `json:"plans"`
	System       metrics.SysHealth    `json:"system"`
}

// Metrics collects the report for the last N days.
func (a *App) Metrics(ctx context.Context, days int) (*MetricsReport, error) {
	report := &MetricsReport{
		System: metrics.GetSysHealth(filepath.Dir(a.cfg.DatabasePath)),
	}
	if cat := a.catalog.Load(); cat != nil {
		report.CatalogItems = cat.Len()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		usage, err := a.metricsStore.GetDailyUsage(gctx, days)
		report.Usage = usage
		return err
	})
	g.Go(func() error {
		stats, err := a.metricsStore.GetPlanStats(gctx, days)
		report.Plans = stats
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// CleanupMetrics deletes metric rows older than the given number of days.
func (a *App) CleanupMetrics(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays < 1 {
		return 0, fmt.Errorf("retention must be at least one day, got %d", olderThanDays)
	}
	n, err := a.metricsStore.Cleanup(ctx, olderThanDays)
	if err != nil {
		return n, err
	}
	a.log.Info("metrics cleaned up", "rows", n, "older_than_days", olderThanDays)
	return n, nil
}

package app

import (
	"context"
	"fmt"

	"meal-concierge/internal/catalog"
	"meal-concierge/internal/coach"
	"meal-concierge/internal/config"
	"meal-concierge/internal/database"
	"meal-concierge/internal/llm"
	"meal-concierge/internal/logger"
	"meal-concierge/internal/metrics"
	"meal-concierge/internal/planner"
)

// Build opens storage, loads the scoring policy, optionally connects the coach and loads the catalog.
// The returned close function releases everything Build opened.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, func(), error) {
	db, err := database.NewDB(cfg.DatabasePath, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	closers := []func() error{db.Close}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("close failed", "error", err)
			}
		}
	}

	weights := planner.DefaultWeights()
	if cfg.ScoringConfigPath != "" {
		weights, err = planner.LoadWeights(cfg.ScoringConfigPath)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		log.Info("scoring weights loaded", "path", cfg.ScoringConfigPath)
	}

	var planCoach *coach.Coach
	if cfg.CoachEnabled() {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, gemini.Close)
		planCoach = coach.New(gemini)
		log.Info("plan coach enabled", "model", cfg.GeminiModel)
	}

	a := NewApp(
		cfg,
		log,
		catalog.NewRepository(db.SQL),
		metrics.NewStore(db.SQL),
		planner.NewPlanner(weights, log),
		planCoach,
	)
	if _, err := a.ReloadCatalog(ctx); err != nil {
		closeAll()
		return nil, nil, err
	}
	return a, closeAll, nil
}

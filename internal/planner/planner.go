package planner

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"meal-concierge/internal/catalog"
	"meal-concierge/internal/logger"
	"meal-concierge/internal/nutrition"
)

// ErrNoCatalog is returned when a plan is requested before any catalog is loaded.
var ErrNoCatalog = errors.New("no menu catalog loaded")

// Request describes one plan to assemble. Days and MealsPerDay are expected to be pre-clamped.
type Request struct {
	Targets     nutrition.Targets
	Note        string
	Cuisine     string
	Chain       string
	Days        int
	MealsPerDay int
}

// Planner assembles multi-day plans from a catalog.
type Planner struct {
	sampler Sampler
	log     *logger.Logger
}

// NewPlanner creates a new Planner scoring combos with w.
func NewPlanner(w Weights, log *logger.Logger) *Planner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Planner{
		sampler: Sampler{Weights: w},
		log:     log,
	}
}

// Weights returns the scoring policy in use.
func (p *Planner) Weights() Weights {
	return p.sampler.Weights
}

// Assemble filters the catalog once, then samples each day independently from the same pool.
// Items may repeat across days but never within a day. Days below one give an empty plan.
func (p *Planner) Assemble(cat *catalog.Catalog, req Request, rng Rand) (*MealPlan, error) {
	if cat == nil {
		return nil, ErrNoCatalog
	}

	pool := cat.Filter(req.Cuisine, req.Chain)

	plan := &MealPlan{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Targets:     req.Targets,
		Note:        req.Note,
		Cuisine:     req.Cuisine,
		Chain:       req.Chain,
		MealsPerDay: req.MealsPerDay,
		PoolSize:    len(pool),
		Plan:        make([]PlanDay, 0, max(req.Days, 0)),
	}

	for day := 1; day <= req.Days; day++ {
		combo := p.sampler.Sample(pool, req.MealsPerDay, req.Targets, rng)
		plan.Plan = append(plan.Plan, PlanDay{
			Day:    day,
			Items:  combo.Items,
			Totals: combo.Totals,
			Score:  combo.Score,
		})
		p.log.Debug("day assembled",
			"plan_id", plan.ID,
			"day", day,
			"calories", combo.Totals.Calories,
			"protein_g", combo.Totals.ProteinG,
			"score", combo.Score,
		)
	}

	return plan, nil
}

package planner

import (
	"time"

	"meal-concierge/internal/catalog"
	"meal-concierge/internal/nutrition"
)

// PlanDay is one day of the plan: the chosen combo and its totals.
type PlanDay struct {
	Day    int                `json:"day"`
	Items  []catalog.MenuItem `json:"items"`
	Totals Totals             `json:"totals"`
	Score  float64            `json:"score"`
}

// MealPlan is the full multi-day result returned to callers.
type MealPlan struct {
	ID          string            `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	Targets     nutrition.Targets `json:"targets"`
	Note        string            `json:"note"`
	Cuisine     string            `json:"cuisine,omitempty"`
	Chain       string            `json:"chain,omitempty"`
	MealsPerDay int               `json:"meals_per_day"`
	PoolSize    int               `json:"pool_size"`
	Seed        uint64            `json:"seed"`
	Plan        []PlanDay         `json:"plan"`
	CoachNote   string            `json:"coach_note,omitempty"`
}

// MeanScore averages the day scores; zero for an empty plan.
func (p *MealPlan) MeanScore() float64 {
	if len(p.Plan) == 0 {
		return 0
	}
	var sum float64
	for _, d := range p.Plan {
		sum += d.Score
	}
	return sum / float64(len(p.Plan))
}

// MeanCalorieError averages |day calories - target| across days.
func (p *MealPlan) MeanCalorieError() float64 {
	if len(p.Plan) == 0 {
		return 0
	}
	var sum int
	for _, d := range p.Plan {
		sum += abs(d.Totals.Calories - p.Targets.Calories)
	}
	return float64(sum) / float64(len(p.Plan))
}

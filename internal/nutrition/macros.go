package nutrition

import "strings"

// Protein strategies accepted in ProteinPlan.Strategy.
const (
	StrategyPerLb   = "per_lb"
	StrategyPercent = "percent"
)

const (
	// DefaultProteinPercent is the share of calories assigned to protein when no percent is given.
	DefaultProteinPercent = 0.35
	// DefaultProteinPerLb is the grams per lb used when the per-lb strategy has no factor.
	DefaultProteinPerLb = 0.9

	minProteinPerLb = 0.8
	maxProteinPerLb = 1.2
)

// Targets is the resolved daily goal.
type Targets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbG    int `json:"carb_g"`
	FatG     int `json:"fat_g"`
}

// ProteinPlan selects how protein grams are derived.
type ProteinPlan struct {
	Strategy string
	Percent  float64
	PerLb    float64
	WeightLb float64
}

// ProteinGrams resolves a protein target. The per-lb strategy needs a body weight and
// otherwise falls back to percent of calories. Percent is used as given.
func ProteinGrams(calories int, p ProteinPlan) int {
	if strings.ToLower(strings.TrimSpace(p.Strategy)) == StrategyPerLb && p.WeightLb > 0 {
		factor := p.PerLb
		if factor < minProteinPerLb {
			factor = minProteinPerLb
		}
		g := factor * p.WeightLb
		if limit := maxProteinPerLb * p.WeightLb; g > limit {
			g = limit
		}
		return round(g)
	}

	return round(p.Percent * float64(calories) / 4)
}

// MacroSplit divides the calories left after protein evenly between carbs and fat.
func MacroSplit(calories, proteinG int) (carbG, fatG int) {
	remaining := calories - proteinG*4
	if remaining < 0 {
		remaining = 0
	}
	carbG = round(float64(remaining) * 0.5 / 4)
	fatG = round(float64(remaining) * 0.5 / 9)
	return carbG, fatG
}

// MacroTargets builds Targets for a calorie goal and a protein target.
func MacroTargets(calories, proteinG int) Targets {
	carb, fat := MacroSplit(calories, proteinG)
	return Targets{Calories: calories, ProteinG: proteinG, CarbG: carb, FatG: fat}
}

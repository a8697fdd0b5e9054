package planner

import (
	"math"

	"meal-concierge/internal/catalog"
	"meal-concierge/internal/nutrition"
)

// Totals is the summed nutrition of a combo.
type Totals struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// TotalsOf sums the nutrients of items.
func TotalsOf(items []catalog.MenuItem) Totals {
	var t Totals
	for _, it := range items {
		t.Calories += it.Calories
		t.ProteinG += it.ProteinG
		t.CarbsG += it.CarbsG
		t.FatG += it.FatG
	}
	return t
}

// DistinctChains counts the different chains in items.
func DistinctChains(items []catalog.MenuItem) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it.Chain] = struct{}{}
	}
	return len(seen)
}

// Score rates a combo against targets; lower is better.
// Only protein shortfall is penalized, and carbs/fat only past their tolerance bands.
func (w Weights) Score(totals Totals, chains int, t nutrition.Targets) float64 {
	caloriePenalty := math.Abs(float64(totals.Calories-t.Calories)) / w.CalorieDivisor

	proteinPenalty := math.Max(0, float64(t.ProteinG-totals.ProteinG)) * w.ProteinShortfall

	fatOvershoot := math.Max(0, float64(totals.FatG)-float64(t.FatG)*w.FatTolerance)
	carbOvershoot := math.Max(0, float64(totals.CarbsG)-float64(t.CarbG)*w.CarbTolerance)
	macroPenalty := fatOvershoot*w.FatOvershoot + carbOvershoot*w.CarbOvershoot

	varietyBonus := -w.VarietyBonus * float64(chains-1)

	return caloriePenalty + proteinPenalty + macroPenalty + varietyBonus
}

// ScoreItems totals items and scores them.
func (w Weights) ScoreItems(items []catalog.MenuItem, t nutrition.Targets) (float64, Totals) {
	totals := TotalsOf(items)
	return w.Score(totals, DistinctChains(items), t), totals
}

package app

import (
	"strconv"
	"strings"
	"time"

	"meal-concierge/internal/nutrition"
)

const (
	MaxDays        = 14
	MaxMealsPerDay = 6
)

// PlanRequest carries raw plan parameters exactly as a user supplied them.
// Every field is optional; unusable values fall back to defaults.
type PlanRequest struct {
	Calories string `form:"calories" json:"calories,omitempty"`
	TDEE     string `form:"tdee" json:"tdee,omitempty"`
	Goal     string `form:"goal" json:"goal,omitempty"`

	Sex      string `form:"sex" json:"sex,omitempty"`
	WeightLb string `form:"weight_lb" json:"weight_lb,omitempty"`
	HeightIn string `form:"height_in" json:"height_in,omitempty"`
	Age      string `form:"age" json:"age,omitempty"`
	Activity string `form:"activity" json:"activity,omitempty"`

	ProteinStrategy string `form:"protein_strategy" json:"protein_strategy,omitempty"`
	ProteinPercent  string `form:"protein_percent" json:"protein_percent,omitempty"`
	ProteinPerLb    string `form:"protein_per_lb" json:"protein_per_lb,omitempty"`

	Cuisine string `form:"cuisine" json:"cuisine,omitempty"`
	Chain   string `form:"chain" json:"chain,omitempty"`

	Days        string `form:"days" json:"days,omitempty"`
	MealsPerDay string `form:"meals_per_day" json:"meals_per_day,omitempty"`
	Seed        string `form:"seed" json:"seed,omitempty"`
}

// RequestFromMap builds a PlanRequest from key=value pairs using the query parameter names.
// Unknown keys are ignored.
func RequestFromMap(kv map[string]string) PlanRequest {
	return PlanRequest{
		Calories:        kv["calories"],
		TDEE:            kv["tdee"],
		Goal:            kv["goal"],
		Sex:             kv["sex"],
		WeightLb:        kv["weight_lb"],
		HeightIn:        kv["height_in"],
		Age:             kv["age"],
		Activity:        kv["activity"],
		ProteinStrategy: kv["protein_strategy"],
		ProteinPercent:  kv["protein_percent"],
		ProteinPerLb:    kv["protein_per_lb"],
		Cuisine:         kv["cuisine"],
		Chain:           kv["chain"],
		Days:            kv["days"],
		MealsPerDay:     kv["meals_per_day"],
		Seed:            kv["seed"],
	}
}

func (r PlanRequest) nutritionInput() nutrition.Input {
	return nutrition.Input{
		Calories:        r.Calories,
		TDEE:            r.TDEE,
		Sex:             r.Sex,
		WeightLb:        r.WeightLb,
		HeightIn:        r.HeightIn,
		Age:             r.Age,
		Activity:        r.Activity,
		Goal:            r.Goal,
		ProteinStrategy: r.ProteinStrategy,
		ProteinPercent:  r.ProteinPercent,
		ProteinPerLb:    r.ProteinPerLb,
	}
}

// clampCount parses a small positive count. Unparseable or missing values give fallback;
// parseable values are clamped into [1, max].
func clampCount(raw string, fallback, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		n = fallback
	}
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

// seed returns the explicit seed or a time-based one.
func (r PlanRequest) seed() uint64 {
	if s, err := strconv.ParseUint(strings.TrimSpace(r.Seed), 10, 64); err == nil {
		return s
	}
	return uint64(time.Now().UnixNano())
}

func resolveTargets(r PlanRequest) (nutrition.Targets, string) {
	return nutrition.Resolve(r.nutritionInput())
}

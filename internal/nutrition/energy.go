// Package nutrition turns body stats, activity and goals into daily calorie and macro targets.
package nutrition

import (
	"math"
	"strings"
)

const (
	// DefaultTDEE is used when neither an explicit TDEE nor complete body stats are available.
	DefaultTDEE = 2000
	// FallbackCalories is the daily target used when the inputs cannot be parsed.
	FallbackCalories = 2000
)

var activityMultipliers = map[string]float64{
	"sedentary": 1.20,
	"light":     1.375,
	"moderate":  1.55,
	"very":      1.725,
	"athlete":   1.90,
}

var goalMultipliers = map[string]float64{
	"loss25":   0.75,
	"maintain": 1.00,
	"gain10":   1.10,
}

// BodyStats are the inputs to the Mifflin-St Jeor estimate, in imperial units.
type BodyStats struct {
	Sex      string
	WeightLb float64
	HeightIn float64
	Age      int
	Activity string
}

// MifflinStJeor returns basal metabolic rate in kcal/day.
func MifflinStJeor(sex string, weightKg, heightCm float64, age int) float64 {
	s := -161.0
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(sex)), "m") {
		s = 5
	}
	return 10*weightKg + 6.25*heightCm - 5*float64(age) + s
}

// ActivityMultiplier maps an activity keyword to its TDEE multiplier. Unknown levels count as moderate.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[strings.ToLower(strings.TrimSpace(level))]; ok {
		return m
	}
	return activityMultipliers["moderate"]
}

// GoalMultiplier maps a goal keyword to its calorie multiplier. Unknown goals count as loss25.
func GoalMultiplier(goal string) float64 {
	if m, ok := goalMultipliers[strings.ToLower(strings.TrimSpace(goal))]; ok {
		return m
	}
	return goalMultipliers["loss25"]
}

// LbToKg converts pounds to kilograms.
func LbToKg(lb float64) float64 { return lb * 0.45359237 }

// InToCm converts inches to centimeters.
func InToCm(in float64) float64 { return in * 2.54 }

// TDEEFromStats estimates total daily energy expenditure.
func TDEEFromStats(s BodyStats) int {
	bmr := MifflinStJeor(s.Sex, LbToKg(s.WeightLb), InToCm(s.HeightIn), s.Age)
	return round(bmr * ActivityMultiplier(s.Activity))
}

// CalorieGoal applies the goal multiplier to a TDEE.
func CalorieGoal(tdee int, goal string) int {
	return round(float64(tdee) * GoalMultiplier(goal))
}

// round rounds half to even.
func round(v float64) int {
	return int(math.RoundToEven(v))
}

package nutrition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Input holds raw, unparsed request values. Empty strings mean "not supplied".
type Input struct {
	Calories string
	TDEE     string

	Sex      string
	WeightLb string
	HeightIn string
	Age      string
	Activity string

	Goal string

	ProteinStrategy string
	ProteinPercent  string
	ProteinPerLb    string
}

var errNonPositive = errors.New("must be positive")

// Resolve converts request inputs into daily targets and a human-readable note.
// It never fails: unusable inputs degrade to documented defaults and the note says so.
func Resolve(in Input) (Targets, string) {
	calories, note, err := resolveCalories(in)
	if err != nil {
		calories = FallbackCalories
		note = fmt.Sprintf("Invalid inputs; defaulted to %d kcal", FallbackCalories)
	}

	protein, err := resolveProtein(calories, in)
	if err != nil {
		protein = ProteinGrams(calories, ProteinPlan{Strategy: StrategyPercent, Percent: DefaultProteinPercent})
	}

	return MacroTargets(calories, protein), note
}

func resolveCalories(in Input) (int, string, error) {
	if v := strings.TrimSpace(in.Calories); v != "" {
		calories, err := parsePositiveInt(v)
		if err != nil {
			return 0, "", fmt.Errorf("calories: %w", err)
		}
		return calories, fmt.Sprintf("Using explicit calories = %d", calories), nil
	}

	var (
		tdee int
		note string
		err  error
	)
	stats, hasStats, statsErr := parseBodyStats(in)
	switch {
	case strings.TrimSpace(in.TDEE) != "":
		if tdee, err = parsePositiveInt(strings.TrimSpace(in.TDEE)); err != nil {
			return 0, "", fmt.Errorf("tdee: %w", err)
		}
	case statsErr != nil:
		return 0, "", statsErr
	case hasStats:
		tdee = TDEEFromStats(stats)
	default:
		tdee = DefaultTDEE
		note = fmt.Sprintf("Fallback: TDEE defaulted to %d", DefaultTDEE)
	}

	goal := strings.ToLower(strings.TrimSpace(in.Goal))
	if goal == "" {
		goal = "loss25"
	}
	calories := CalorieGoal(tdee, goal)
	if calories <= 0 {
		return 0, "", fmt.Errorf("calorie goal %d: %w", calories, errNonPositive)
	}
	if note == "" {
		note = fmt.Sprintf("TDEE %d → goal '%s' ⇒ %d kcal/day", tdee, goal, calories)
	}
	return calories, note, nil
}

// parseBodyStats reports whether sex, weight, height and age are all present.
// Activity is optional and defaults to moderate.
func parseBodyStats(in Input) (BodyStats, bool, error) {
	sex := strings.TrimSpace(in.Sex)
	weight := strings.TrimSpace(in.WeightLb)
	height := strings.TrimSpace(in.HeightIn)
	age := strings.TrimSpace(in.Age)
	if sex == "" || weight == "" || height == "" || age == "" {
		return BodyStats{}, false, nil
	}

	w, err := strconv.ParseFloat(weight, 64)
	if err != nil {
		return BodyStats{}, false, fmt.Errorf("weight_lb: %w", err)
	}
	h, err := strconv.ParseFloat(height, 64)
	if err != nil {
		return BodyStats{}, false, fmt.Errorf("height_in: %w", err)
	}
	a, err := strconv.Atoi(age)
	if err != nil {
		return BodyStats{}, false, fmt.Errorf("age: %w", err)
	}

	activity := strings.TrimSpace(in.Activity)
	if activity == "" {
		activity = "moderate"
	}
	return BodyStats{Sex: sex, WeightLb: w, HeightIn: h, Age: a, Activity: activity}, true, nil
}

func resolveProtein(calories int, in Input) (int, error) {
	plan := ProteinPlan{
		Strategy: strings.ToLower(strings.TrimSpace(in.ProteinStrategy)),
		Percent:  DefaultProteinPercent,
		PerLb:    DefaultProteinPerLb,
	}
	if plan.Strategy == "" {
		plan.Strategy = StrategyPercent
	}

	var err error
	if v := strings.TrimSpace(in.ProteinPercent); v != "" {
		if plan.Percent, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, fmt.Errorf("protein_percent: %w", err)
		}
	}
	if v := strings.TrimSpace(in.ProteinPerLb); v != "" {
		if plan.PerLb, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, fmt.Errorf("protein_per_lb: %w", err)
		}
	}
	if v := strings.TrimSpace(in.WeightLb); v != "" {
		if plan.WeightLb, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, fmt.Errorf("weight_lb: %w", err)
		}
	}

	return ProteinGrams(calories, plan), nil
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errNonPositive
	}
	return n, nil
}

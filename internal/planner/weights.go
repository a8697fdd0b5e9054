package planner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights are the policy constants of the combo score. The defaults encode
// "hit calories fairly tightly, never fall short on protein, tolerate moderate
// carb/fat excess, mildly prefer variety".
type Weights struct {
	CalorieDivisor   float64 `yaml:"calorie_divisor"`
	ProteinShortfall float64 `yaml:"protein_shortfall"`
	FatOvershoot     float64 `yaml:"fat_overshoot"`
	CarbOvershoot    float64 `yaml:"carb_overshoot"`
	FatTolerance     float64 `yaml:"fat_tolerance"`
	CarbTolerance    float64 `yaml:"carb_tolerance"`
	VarietyBonus     float64 `yaml:"variety_bonus"`
}

// DefaultWeights returns the production scoring policy.
func DefaultWeights() Weights {
	return Weights{
		CalorieDivisor:   6,
		ProteinShortfall: 8.5,
		FatOvershoot:     0.7,
		CarbOvershoot:    0.3,
		FatTolerance:     1.25,
		CarbTolerance:    1.35,
		VarietyBonus:     0.4,
	}
}

// LoadWeights overlays a YAML file on DefaultWeights. Keys absent from the file keep their default.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()

	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("failed to read scoring config: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return DefaultWeights(), fmt.Errorf("failed to parse scoring config %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return DefaultWeights(), err
	}
	return w, nil
}

// Validate rejects weights that would make the score meaningless.
func (w Weights) Validate() error {
	if w.CalorieDivisor <= 0 {
		return fmt.Errorf("calorie_divisor must be positive, got %v", w.CalorieDivisor)
	}
	if w.FatTolerance < 0 || w.CarbTolerance < 0 {
		return fmt.Errorf("tolerances must not be negative")
	}
	if w.ProteinShortfall < 0 || w.FatOvershoot < 0 || w.CarbOvershoot < 0 || w.VarietyBonus < 0 {
		return fmt.Errorf("penalty weights must not be negative")
	}
	return nil
}

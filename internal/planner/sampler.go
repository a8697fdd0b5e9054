package planner

import (
	"math"
	"sort"

	"meal-concierge/internal/catalog"
	"meal-concierge/internal/nutrition"
)

const (
	minRestrictedPool  = 10
	restrictedFraction = 0.8

	triesPerItem = 250
	minTries     = 1500
	maxTries     = 5000

	refineTries     = 1500
	refineTolerance = 125
)

// Rand is the random source the sampler draws from. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Combo is the best draw found for one day.
type Combo struct {
	Items  []catalog.MenuItem
	Totals Totals
	Score  float64
}

// Sampler searches a pool for the lowest-scoring subset of a fixed size by repeated random draws.
type Sampler struct {
	Weights Weights
}

// Sample returns the best combo of min(mealsPerDay, |restricted pool|) items.
// An empty pool or a non-positive meal count yields an empty combo with zero totals.
func (s Sampler) Sample(pool []catalog.MenuItem, mealsPerDay int, t nutrition.Targets, rng Rand) Combo {
	if len(pool) == 0 || mealsPerDay < 1 {
		return Combo{Items: []catalog.MenuItem{}}
	}

	restricted := restrictPool(pool, float64(t.Calories)/float64(mealsPerDay))
	k := mealsPerDay
	if k > len(restricted) {
		k = len(restricted)
	}

	tries := len(restricted) * triesPerItem
	if tries < minTries {
		tries = minTries
	}
	if tries > maxTries {
		tries = maxTries
	}

	d := newDrawer(restricted, k, rng)
	best := Combo{Score: math.Inf(1)}

	for i := 0; i < tries; i++ {
		picks := d.draw()
		score, totals := s.Weights.ScoreItems(picks, t)
		if score < best.Score {
			best = Combo{Items: append([]catalog.MenuItem(nil), picks...), Totals: totals, Score: score}
		}
	}

	if abs(best.Totals.Calories-t.Calories) > refineTolerance {
		for i := 0; i < refineTries; i++ {
			picks := d.draw()
			score, totals := s.Weights.ScoreItems(picks, t)
			if score >= best.Score {
				continue
			}
			best = Combo{Items: append([]catalog.MenuItem(nil), picks...), Totals: totals, Score: score}
			if abs(totals.Calories-t.Calories) <= refineTolerance {
				break
			}
		}
	}

	return best
}

// restrictPool keeps the max(10, 80%) items whose calories sit closest to the ideal per-meal value.
// The sort is stable so ties keep catalog order.
func restrictPool(pool []catalog.MenuItem, idealPerMeal float64) []catalog.MenuItem {
	sorted := append([]catalog.MenuItem(nil), pool...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(float64(sorted[i].Calories)-idealPerMeal) < math.Abs(float64(sorted[j].Calories)-idealPerMeal)
	})

	keep := int(restrictedFraction * float64(len(sorted)))
	if keep < minRestrictedPool {
		keep = minRestrictedPool
	}
	if keep > len(sorted) {
		keep = len(sorted)
	}
	return sorted[:keep]
}

// drawer samples k distinct items uniformly with a partial Fisher-Yates shuffle.
// The index buffer is reused across draws; each draw is still uniform over k-subsets.
type drawer struct {
	pool  []catalog.MenuItem
	idx   []int
	picks []catalog.MenuItem
	rng   Rand
}

func newDrawer(pool []catalog.MenuItem, k int, rng Rand) *drawer {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	return &drawer{pool: pool, idx: idx, picks: make([]catalog.MenuItem, k), rng: rng}
}

func (d *drawer) draw() []catalog.MenuItem {
	n := len(d.idx)
	for i := range d.picks {
		j := i + d.rng.IntN(n-i)
		d.idx[i], d.idx[j] = d.idx[j], d.idx[i]
		d.picks[i] = d.pool[d.idx[i]]
	}
	return d.picks
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

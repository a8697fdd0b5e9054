package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidItem is returned when a record breaks a catalog invariant.
var ErrInvalidItem = errors.New("invalid menu item")

// MenuItem is a single orderable food record.
type MenuItem struct {
	Name     string   `json:"name"`
	Chain    string   `json:"chain"`
	Cuisine  string   `json:"cuisine"`
	Calories int      `json:"calories"`
	ProteinG int      `json:"protein_g"`
	CarbsG   int      `json:"carbs_g"`
	FatG     int      `json:"fat_g"`
	MealType string   `json:"meal_type,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Validate checks the invariants a record must hold before it can join a Catalog.
func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if strings.TrimSpace(m.Chain) == "" {
		return fmt.Errorf("%w: %q has no chain", ErrInvalidItem, m.Name)
	}
	if m.Calories < 0 || m.ProteinG < 0 || m.CarbsG < 0 || m.FatG < 0 {
		return fmt.Errorf("%w: %q has negative nutrients", ErrInvalidItem, m.Name)
	}
	if m.MealType != strings.ToLower(m.MealType) {
		return fmt.Errorf("%w: %q meal_type must be lowercase", ErrInvalidItem, m.Name)
	}
	return nil
}

func (m MenuItem) key() string {
	return strings.ToLower(m.Chain) + "\x00" + strings.ToLower(m.Name)
}

func (m MenuItem) clone() MenuItem {
	if m.Tags != nil {
		m.Tags = append([]string(nil), m.Tags...)
	}
	return m
}

// Catalog is an immutable, ordered collection of menu items.
// It is built once and shared read-only between requests.
type Catalog struct {
	items []MenuItem
}

// New validates and copies items into a Catalog.
func New(items []MenuItem) (*Catalog, error) {
	out := make([]MenuItem, 0, len(items))
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, it.clone())
	}
	return &Catalog{items: out}, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy of every item in catalog order.
func (c *Catalog) Items() []MenuItem {
	return c.Head(len(c.items))
}

// Head returns a copy of the first n items.
func (c *Catalog) Head(n int) []MenuItem {
	if n > len(c.items) {
		n = len(c.items)
	}
	if n < 0 {
		n = 0
	}
	out := make([]MenuItem, n)
	for i := 0; i < n; i++ {
		out[i] = c.items[i].clone()
	}
	return out
}

// Merge combines seed and external items keyed by (chain, name), case-insensitive.
// External items replace seed items with the same key but keep the seed's position.
func Merge(seed, external []MenuItem) []MenuItem {
	index := make(map[string]int, len(seed)+len(external))
	out := make([]MenuItem, 0, len(seed)+len(external))
	for _, group := range [][]MenuItem{seed, external} {
		for _, it := range group {
			k := it.key()
			if i, ok := index[k]; ok {
				out[i] = it
				continue
			}
			index[k] = len(out)
			out = append(out, it)
		}
	}
	return out
}

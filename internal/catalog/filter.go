package catalog

import "strings"

// Filter narrows the catalog to items whose cuisine starts with cuisine and whose
// chain equals chain, both case-insensitive. Empty arguments are ignored.
// Filtering is advisory: when nothing matches, the full catalog is returned.
func (c *Catalog) Filter(cuisine, chain string) []MenuItem {
	cuisine = strings.ToLower(strings.TrimSpace(cuisine))
	chain = strings.TrimSpace(chain)

	if cuisine == "" && chain == "" {
		return c.Items()
	}

	var pool []MenuItem
	for _, it := range c.items {
		if cuisine != "" && !strings.HasPrefix(strings.ToLower(it.Cuisine), cuisine) {
			continue
		}
		if chain != "" && !strings.EqualFold(it.Chain, chain) {
			continue
		}
		pool = append(pool, it.clone())
	}

	if len(pool) == 0 {
		return c.Items()
	}
	return pool
}

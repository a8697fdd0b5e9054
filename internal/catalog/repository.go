package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Repository is a database-backed store of already-normalized menu items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

const upsertItemSQL = `
INSERT INTO menu_items (name, chain, cuisine, calories, protein_g, carbs_g, fat_g, meal_type, tags, chain_key, name_key, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (chain_key, name_key) DO UPDATE SET
	name = excluded.name,
	chain = excluded.chain,
	cuisine = excluded.cuisine,
	calories = excluded.calories,
	protein_g = excluded.protein_g,
	carbs_g = excluded.carbs_g,
	fat_g = excluded.fat_g,
	meal_type = excluded.meal_type,
	tags = excluded.tags,
	updated_at = excluded.updated_at`

// Save inserts or updates items in one transaction. Items that fail validation abort the whole batch.
func (r *Repository) Save(ctx context.Context, items []MenuItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertItemSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		tags := it.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags for %q: %w", it.Name, err)
		}
		var mealType sql.NullString
		if it.MealType != "" {
			mealType = sql.NullString{String: it.MealType, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			it.Name, it.Chain, it.Cuisine,
			it.Calories, it.ProteinG, it.CarbsG, it.FatG,
			mealType, string(tagsJSON),
			strings.ToLower(it.Chain), strings.ToLower(it.Name),
			now,
		); err != nil {
			return fmt.Errorf("failed to save menu item %q: %w", it.Name, err)
		}
	}

	return tx.Commit()
}

// List returns every stored item in insertion order.
func (r *Repository) List(ctx context.Context) ([]MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, chain, cuisine, calories, protein_g, carbs_g, fat_g, meal_type, tags
		FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var (
			it       MenuItem
			mealType sql.NullString
			tags     string
		)
		if err := rows.Scan(&it.Name, &it.Chain, &it.Cuisine, &it.Calories, &it.ProteinG, &it.CarbsG, &it.FatG, &mealType, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		it.MealType = mealType.String
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &it.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags for %q: %w", it.Name, err)
			}
		}
		if len(it.Tags) == 0 {
			it.Tags = nil
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Count returns the number of stored items.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return n, nil
}

// Load builds a Catalog from the seed menu with stored items merged on top.
func (r *Repository) Load(ctx context.Context) (*Catalog, error) {
	stored, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return New(Merge(SeedItems(), stored))
}

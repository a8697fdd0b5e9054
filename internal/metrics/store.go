package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meal-concierge/internal/shared"
)

// timeLayout is how timestamps are stored so SQLite date() can read them.
const timeLayout = "2006-01-02 15:04:05"

// ExecutionMetric records metadata for a single agent execution.
type ExecutionMetric struct {
	AgentName        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Timestamp        time.Time
}

// PlanRun records one assembled plan.
type PlanRun struct {
	PlanID           string
	CalorieTarget    int
	Days             int
	MealsPerDay      int
	PoolSize         int
	MeanScore        float64
	MeanCalorieError float64
	LatencyMS        int64
	Timestamp        time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves an agent execution metric.
func (s *Store) Record(ctx context.Context, m ExecutionMetric) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO execution_metrics (agent_name, model, prompt_tokens, completion_tokens, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.AgentName, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, stamp(m.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to record execution metric: %w", err)
	}
	return nil
}

// RecordMeta records metrics directly from shared.AgentMeta.
func (s *Store) RecordMeta(ctx context.Context, meta shared.AgentMeta) error {
	if meta.Usage.IsZero() {
		return nil
	}
	return s.Record(ctx, MapUsage(meta.AgentName, meta.Usage, meta.Latency))
}

// RecordPlanRun saves the outcome of one plan assembly.
func (s *Store) RecordPlanRun(ctx context.Context, r PlanRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plan_runs (plan_id, calorie_target, days, meals_per_day, pool_size, mean_score, mean_calorie_error, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PlanID, r.CalorieTarget, r.Days, r.MealsPerDay, r.PoolSize, r.MeanScore, r.MeanCalorieError, r.LatencyMS, stamp(r.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to record plan run: %w", err)
	}
	return nil
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string `json:"date"`
	TotalPrompt     int    `json:"total_prompt"`
	TotalCompletion int    `json:"total_completion"`
	TotalExecution  int    `json:"total_execution"`
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(timestamp) AS day, SUM(prompt_tokens), SUM(completion_tokens), COUNT(*)
		FROM execution_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`,
		since(days),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var (
			day                sql.NullString
			prompt, completion sql.NullInt64
			u                  DailyUsage
		)
		if err := rows.Scan(&day, &prompt, &completion, &u.TotalExecution); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		u.Date = "Unknown"
		if day.Valid {
			u.Date = day.String
		}
		u.TotalPrompt = int(prompt.Int64)
		u.TotalCompletion = int(completion.Int64)
		results = append(results, u)
	}
	return results, rows.Err()
}

// PlanStats aggregates plan runs over a window.
type PlanStats struct {
	Runs            int     `json:"runs"`
	AvgScore        float64 `json:"avg_score"`
	AvgCalorieError float64 `json:"avg_calorie_error"`
	AvgLatencyMS    float64 `json:"avg_latency_ms"`
	AvgPoolSize     float64 `json:"avg_pool_size"`
	LastRun         string  `json:"last_run,omitempty"`
}

// GetPlanStats summarizes plan runs from the last N days.
func (s *Store) GetPlanStats(ctx context.Context, days int) (PlanStats, error) {
	var (
		st                           PlanStats
		score, calErr, latency, pool sql.NullFloat64
		last                         sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), AVG(mean_score), AVG(mean_calorie_error), AVG(latency_ms), AVG(pool_size), MAX(timestamp)
		FROM plan_runs
		WHERE timestamp >= ?`,
		since(days),
	).Scan(&st.Runs, &score, &calErr, &latency, &pool, &last)
	if err != nil {
		return PlanStats{}, fmt.Errorf("failed to query plan stats: %w", err)
	}
	st.AvgScore = score.Float64
	st.AvgCalorieError = calErr.Float64
	st.AvgLatencyMS = latency.Float64
	st.AvgPoolSize = pool.Float64
	st.LastRun = last.String
	return st, nil
}

// Cleanup removes records older than the specified number of days and returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := since(olderThanDays)

	var total int64
	for _, table := range []string{"execution_metrics", "plan_runs"} {
		res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE timestamp < ?", threshold)
		if err != nil {
			return total, fmt.Errorf("failed to clean up %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("failed to count cleaned %s rows: %w", table, err)
		}
		total += n
	}
	return total, nil
}

// MapUsage helper to convert shared.TokenUsage to ExecutionMetric.
func MapUsage(agentName string, usage shared.TokenUsage, latency time.Duration) ExecutionMetric {
	return ExecutionMetric{
		AgentName:        agentName,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
		Timestamp:        time.Now().UTC(),
	}
}

func stamp(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.UTC().Format(timeLayout)
}

func since(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format(timeLayout)
}

package coach

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"meal-concierge/internal/llm"
	"meal-concierge/internal/planner"
	"meal-concierge/internal/shared"
)

// AgentName identifies coach executions in the metrics store.
const AgentName = "Coach"

//go:embed coach_prompt.md
var coachPrompt string

var coachTemplate = template.Must(template.New("coach").Parse(coachPrompt))

// Coach writes a short advisory note for an assembled plan.
type Coach struct {
	textGen llm.TextGenerator
}

// New creates a Coach backed by textGen.
func New(textGen llm.TextGenerator) *Coach {
	return &Coach{textGen: textGen}
}

// Advise returns the note for plan. Meta is populated even when err is non-nil.
func (c *Coach) Advise(ctx context.Context, plan *planner.MealPlan) (string, shared.AgentMeta, error) {
	start := time.Now()
	meta := shared.AgentMeta{AgentName: AgentName}

	prompt, err := buildPrompt(plan)
	if err != nil {
		meta.Err = err
		return "", meta, err
	}

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	meta.Usage = resp.Usage
	meta.Latency = time.Since(start)
	if err != nil {
		meta.Err = fmt.Errorf("coach generation failed: %w", err)
		return "", meta, meta.Err
	}

	return resp.Content, meta, nil
}

func buildPrompt(plan *planner.MealPlan) (string, error) {
	var buf bytes.Buffer
	if err := coachTemplate.Execute(&buf, plan); err != nil {
		return "", fmt.Errorf("failed to render coach prompt: %w", err)
	}
	return buf.String(), nil
}

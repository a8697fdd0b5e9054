package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// IsZero reports whether no tokens were consumed.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0
}

// AgentMeta holds operational metadata for one LLM-backed step, such as the plan coach.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
	Err       error
}

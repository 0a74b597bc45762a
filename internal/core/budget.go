package core

import (
	"errors"
	"fmt"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// ErrBudgetExceeded indicates a session cost budget has been spent. The
// session halts further agent runs and emits a partial artifact with a
// note; it never crashes the process.
var ErrBudgetExceeded = errors.New("session budget exceeded")

// BudgetTracker accumulates the synthetic cost of agent runs against the
// configured session budgets. Budgets are static configuration values, not
// concurrency controls.
type BudgetTracker struct {
	limits models.GlobalConfig
	used   models.CostMetrics
}

// NewBudgetTracker creates a tracker with the given limits.
func NewBudgetTracker(limits models.GlobalConfig) *BudgetTracker {
	return &BudgetTracker{limits: limits}
}

// Charge records a cost. It returns ErrBudgetExceeded (wrapped with the
// metric that tripped) once any budget is spent; the charge itself is still
// recorded so the report can show the real totals.
func (t *BudgetTracker) Charge(cost models.CostMetrics) error {
	t.used.Add(cost)
	return t.check()
}

// Exceeded reports whether any budget is already spent, without charging.
// Call sites consult it before an agent run so a spent session stops
// making further agent calls.
func (t *BudgetTracker) Exceeded() error {
	return t.check()
}

func (t *BudgetTracker) check() error {
	if t.limits.MaxTokens > 0 && t.used.TokensUsed > t.limits.MaxTokens {
		return fmt.Errorf("%w: %d tokens used of %d", ErrBudgetExceeded, t.used.TokensUsed, t.limits.MaxTokens)
	}
	if t.limits.MaxAPICalls > 0 && t.used.APICalls > t.limits.MaxAPICalls {
		return fmt.Errorf("%w: %d calls used of %d", ErrBudgetExceeded, t.used.APICalls, t.limits.MaxAPICalls)
	}
	if t.limits.MaxComputationTime > 0 && t.used.ComputationTime > float64(t.limits.MaxComputationTime) {
		return fmt.Errorf("%w: %.1fs used of %ds", ErrBudgetExceeded, t.used.ComputationTime, t.limits.MaxComputationTime)
	}
	return nil
}

// Warning returns a human-readable warning once any budget passes the
// configured warn threshold (default 80%).
func (t *BudgetTracker) Warning() (string, bool) {
	threshold := t.limits.CostWarnThreshold
	if threshold <= 0 {
		threshold = 0.8
	}

	if t.limits.MaxTokens > 0 && float64(t.used.TokensUsed) > threshold*float64(t.limits.MaxTokens) {
		return fmt.Sprintf("approaching token budget: %d of %d used", t.used.TokensUsed, t.limits.MaxTokens), true
	}
	if t.limits.MaxAPICalls > 0 && float64(t.used.APICalls) > threshold*float64(t.limits.MaxAPICalls) {
		return fmt.Sprintf("approaching call budget: %d of %d used", t.used.APICalls, t.limits.MaxAPICalls), true
	}
	if t.limits.MaxComputationTime > 0 && t.used.ComputationTime > threshold*float64(t.limits.MaxComputationTime) {
		return fmt.Sprintf("approaching time budget: %.1fs of %ds used", t.used.ComputationTime, t.limits.MaxComputationTime), true
	}
	return "", false
}

// Used returns the totals charged so far.
func (t *BudgetTracker) Used() models.CostMetrics {
	return t.used
}

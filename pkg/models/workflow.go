package models

import "time"

// QuestionCategory is one of the five fixed areas the questionnaire covers.
type QuestionCategory string

const (
	ProblemClarity     QuestionCategory = "problem_clarity"
	MarketContext      QuestionCategory = "market_context"
	SolutionUniqueness QuestionCategory = "solution_uniqueness"
	ScalePotential     QuestionCategory = "scale_potential"
	ExecutionReadiness QuestionCategory = "execution_readiness"
)

// AllCategories lists the question categories in their fixed order.
var AllCategories = []QuestionCategory{
	ProblemClarity,
	MarketContext,
	SolutionUniqueness,
	ScalePotential,
	ExecutionReadiness,
}

// CompletionStatus describes how far along a single category is.
type CompletionStatus string

const (
	StatusNeedsInput CompletionStatus = "needs_input"
	StatusInProgress CompletionStatus = "in_progress"
	StatusSufficient CompletionStatus = "sufficient"
	StatusComplete   CompletionStatus = "complete"
)

// CategoryProgress is the progress of one question category, in [0,1].
type CategoryProgress struct {
	Progress float64          `json:"progress"`
	Status   CompletionStatus `json:"status"`
}

// SessionPhase is the questioning loop's state machine position. The loop
// moves GATHERING -> SUFFICIENT -> FINALIZING and never revisits a state.
type SessionPhase string

const (
	PhaseGathering  SessionPhase = "gathering"
	PhaseSufficient SessionPhase = "sufficient"
	PhaseFinalizing SessionPhase = "finalizing"
)

// Question is a single prompt presented to the founder.
type Question struct {
	ID               string           `json:"id"`
	Text             string           `json:"text"`
	Category         QuestionCategory `json:"category"`
	Rationale        string           `json:"rationale"`
	CompletionImpact float64          `json:"completion_impact"`
	SkipOption       bool             `json:"skip_option"`
	FollowUpHints    []string         `json:"follow_up_hints,omitempty"`
}

// UserResponse records one answered question.
type UserResponse struct {
	QuestionID string           `json:"question_id"`
	Response   string           `json:"response"`
	Category   QuestionCategory `json:"category"`
	Timestamp  time.Time        `json:"timestamp"`
}

// CostMetrics accumulates the synthetic cost of agent runs in a session.
// ComputationTime is in seconds.
type CostMetrics struct {
	TokensUsed      int     `json:"tokens_used"`
	ComputationTime float64 `json:"computation_time"`
	APICalls        int     `json:"api_calls"`
}

// Add accumulates another set of metrics into c.
func (c *CostMetrics) Add(other CostMetrics) {
	c.TokensUsed += other.TokensUsed
	c.ComputationTime += other.ComputationTime
	c.APICalls += other.APICalls
}

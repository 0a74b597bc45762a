package core

import (
	"fmt"
	"time"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

const (
	// sufficientThreshold is the overall completion at which the session
	// leaves the gathering phase on its own.
	sufficientThreshold = 0.8
	// skipQuestionThreshold: skip becomes available once questions_asked
	// exceeds this count, regardless of completion score.
	skipQuestionThreshold = 8
)

// Monitor drives the questioning loop state machine over a session:
// GATHERING -> SUFFICIENT -> FINALIZING, with GATHERING the only state that
// loops. FINALIZING is terminal.
type Monitor struct {
	state *models.SessionState
	now   func() time.Time
}

// NewMonitor creates a Monitor over the given session state.
func NewMonitor(state *models.SessionState) *Monitor {
	return &Monitor{state: state, now: time.Now}
}

// Phase returns the current state machine position.
func (m *Monitor) Phase() models.SessionPhase {
	return m.state.Phase
}

// Overall returns the overall completion score: the mean of the five
// category scores, always in [0,1].
func (m *Monitor) Overall() float64 {
	var total float64
	for _, cat := range models.AllCategories {
		total += m.state.Categories[cat].Progress
	}
	return total / float64(len(models.AllCategories))
}

// RecordResponse appends an answered question, bumps its category's
// completion by the question's declared impact (clamped to 1.0), and
// transitions to SUFFICIENT when the overall score reaches the threshold.
// Only valid while gathering.
func (m *Monitor) RecordResponse(question models.Question, response string) error {
	if m.state.Phase != models.PhaseGathering {
		return fmt.Errorf("recording response: session is %s, not gathering", m.state.Phase)
	}

	m.state.Responses = append(m.state.Responses, models.UserResponse{
		QuestionID: question.ID,
		Response:   response,
		Category:   question.Category,
		Timestamp:  m.now().UTC(),
	})
	m.state.QuestionsAsked++

	progress := m.state.Categories[question.Category]
	progress.Progress = clamp01(progress.Progress + question.CompletionImpact)
	progress.Status = categoryStatus(progress.Progress)
	m.state.Categories[question.Category] = progress

	if m.Overall() >= sufficientThreshold {
		m.state.Phase = models.PhaseSufficient
	}
	return nil
}

// SkipAvailable reports whether the founder may skip the rest of the
// questionnaire. It becomes true iff more than skipQuestionThreshold
// questions have been asked, and only applies while gathering.
func (m *Monitor) SkipAvailable() bool {
	return m.state.Phase == models.PhaseGathering &&
		m.state.QuestionsAsked > skipQuestionThreshold
}

// AcceptSkip transitions GATHERING -> SUFFICIENT regardless of the
// completion score. It is an error when skip is not available.
func (m *Monitor) AcceptSkip() error {
	if !m.SkipAvailable() {
		return fmt.Errorf("skip not available: %d questions asked, need more than %d",
			m.state.QuestionsAsked, skipQuestionThreshold)
	}
	m.state.Phase = models.PhaseSufficient
	return nil
}

// Finalize transitions SUFFICIENT -> FINALIZING, after which no further
// questions are generated for the session.
func (m *Monitor) Finalize() error {
	switch m.state.Phase {
	case models.PhaseSufficient:
		m.state.Phase = models.PhaseFinalizing
		return nil
	case models.PhaseFinalizing:
		return nil
	default:
		return fmt.Errorf("finalizing: session is %s, not sufficient", m.state.Phase)
	}
}

// MissingCriticalInfo names the categories still under the sufficient bar.
func (m *Monitor) MissingCriticalInfo() []string {
	var missing []string
	for _, cat := range models.AllCategories {
		if m.state.Categories[cat].Progress < 0.5 {
			missing = append(missing, fmt.Sprintf("Need more information about %s", cat))
		}
	}
	return missing
}

// categoryStatus maps a category's progress to its status ladder.
func categoryStatus(progress float64) models.CompletionStatus {
	switch {
	case progress >= 0.8:
		return models.StatusComplete
	case progress >= 0.5:
		return models.StatusSufficient
	case progress > 0:
		return models.StatusInProgress
	default:
		return models.StatusNeedsInput
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

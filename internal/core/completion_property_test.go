package core

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/fterranova/venture-playbooks/internal/storage"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

// Category progress and the overall score only ever move forward while
// gathering, and both stay inside [0,1] for any sequence of responses.
func TestCompletionMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := storage.NewSessionState()
		m := NewMonitor(state)

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		prevOverall := 0.0
		for i := 0; i < steps; i++ {
			if m.Phase() != models.PhaseGathering {
				break
			}
			category := rapid.SampledFrom(models.AllCategories).Draw(t, "category")
			impact := rapid.Float64Range(0, 0.5).Draw(t, "impact")
			prevCategory := state.Categories[category].Progress

			if err := m.RecordResponse(testQuestion(category, impact), "answer"); err != nil {
				t.Fatalf("RecordResponse: %v", err)
			}

			got := state.Categories[category].Progress
			if got < prevCategory {
				t.Fatalf("category progress decreased: %v -> %v", prevCategory, got)
			}
			if got < 0 || got > 1 {
				t.Fatalf("category progress out of range: %v", got)
			}

			overall := m.Overall()
			if overall < prevOverall {
				t.Fatalf("overall decreased: %v -> %v", prevOverall, overall)
			}
			if overall < 0 || overall > 1 {
				t.Fatalf("overall out of range: %v", overall)
			}
			prevOverall = overall
		}
	})
}

// The phase machine never moves backwards: once out of gathering a session
// never returns, and skip availability tracks the question count exactly.
func TestPhaseNeverRegressesProperty(t *testing.T) {
	order := map[models.SessionPhase]int{
		models.PhaseGathering:  0,
		models.PhaseSufficient: 1,
		models.PhaseFinalizing: 2,
	}

	rapid.Check(t, func(t *rapid.T) {
		state := storage.NewSessionState()
		m := NewMonitor(state)

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			before := order[m.Phase()]

			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				if m.Phase() == models.PhaseGathering {
					category := rapid.SampledFrom(models.AllCategories).Draw(t, "category")
					_ = m.RecordResponse(testQuestion(category, 0.1), "answer")
				}
			case 1:
				wantAvailable := m.Phase() == models.PhaseGathering &&
					state.QuestionsAsked > skipQuestionThreshold
				if m.SkipAvailable() != wantAvailable {
					t.Fatalf("SkipAvailable = %v with %d questions in %s",
						m.SkipAvailable(), state.QuestionsAsked, m.Phase())
				}
				_ = m.AcceptSkip()
			case 2:
				_ = m.Finalize()
			}

			after := order[m.Phase()]
			if after < before {
				t.Fatalf("phase regressed from %d to %d", before, after)
			}
		}
	})
}

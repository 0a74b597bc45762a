package core

import (
	"testing"

	"github.com/fterranova/venture-playbooks/internal/storage"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

func testQuestion(category models.QuestionCategory, impact float64) models.Question {
	return models.Question{
		ID:               "q_test",
		Text:             "test question",
		Category:         category,
		CompletionImpact: impact,
	}
}

func TestMonitorRecordResponseAdvancesCategory(t *testing.T) {
	state := storage.NewSessionState()
	m := NewMonitor(state)

	if err := m.RecordResponse(testQuestion(models.ProblemClarity, 0.2), "answer"); err != nil {
		t.Fatalf("RecordResponse: %v", err)
	}

	cat := state.Categories[models.ProblemClarity]
	if cat.Progress != 0.2 {
		t.Errorf("progress = %v, want 0.2", cat.Progress)
	}
	if cat.Status != models.StatusInProgress {
		t.Errorf("status = %s, want in_progress", cat.Status)
	}
	if state.QuestionsAsked != 1 {
		t.Errorf("questions asked = %d, want 1", state.QuestionsAsked)
	}
	if len(state.Responses) != 1 {
		t.Errorf("responses = %d, want 1", len(state.Responses))
	}
}

func TestMonitorProgressClampedAtOne(t *testing.T) {
	state := storage.NewSessionState()
	m := NewMonitor(state)

	for i := 0; i < 4; i++ {
		if err := m.RecordResponse(testQuestion(models.ProblemClarity, 0.4), "answer"); err != nil {
			t.Fatalf("RecordResponse %d: %v", i, err)
		}
	}
	if got := state.Categories[models.ProblemClarity].Progress; got != 1.0 {
		t.Errorf("progress = %v, want clamped to 1.0", got)
	}
}

func TestMonitorTransitionsToSufficient(t *testing.T) {
	state := storage.NewSessionState()
	m := NewMonitor(state)

	// Four categories to 1.0 gives an overall of 0.8, exactly the bar.
	for _, cat := range models.AllCategories[:4] {
		for i := 0; i < 2; i++ {
			if err := m.RecordResponse(testQuestion(cat, 0.5), "answer"); err != nil {
				t.Fatalf("RecordResponse: %v", err)
			}
		}
	}

	if m.Phase() != models.PhaseSufficient {
		t.Errorf("phase = %s, want sufficient at overall %.2f", m.Phase(), m.Overall())
	}
}

func TestMonitorRejectsResponsesAfterGathering(t *testing.T) {
	state := storage.NewSessionState()
	state.Phase = models.PhaseSufficient
	m := NewMonitor(state)

	if err := m.RecordResponse(testQuestion(models.ProblemClarity, 0.2), "answer"); err == nil {
		t.Fatal("expected error recording response outside gathering")
	}
}

func TestMonitorSkipOnlyAfterThreshold(t *testing.T) {
	state := storage.NewSessionState()
	m := NewMonitor(state)

	state.QuestionsAsked = skipQuestionThreshold
	if m.SkipAvailable() {
		t.Errorf("skip available at exactly %d questions, want unavailable", skipQuestionThreshold)
	}
	if err := m.AcceptSkip(); err == nil {
		t.Error("AcceptSkip should fail while unavailable")
	}

	state.QuestionsAsked = skipQuestionThreshold + 1
	if !m.SkipAvailable() {
		t.Errorf("skip unavailable at %d questions, want available", state.QuestionsAsked)
	}
	if err := m.AcceptSkip(); err != nil {
		t.Fatalf("AcceptSkip: %v", err)
	}
	if m.Phase() != models.PhaseSufficient {
		t.Errorf("phase = %s after skip, want sufficient", m.Phase())
	}
}

func TestMonitorSkipUnavailableOutsideGathering(t *testing.T) {
	state := storage.NewSessionState()
	state.QuestionsAsked = 20
	state.Phase = models.PhaseFinalizing
	m := NewMonitor(state)

	if m.SkipAvailable() {
		t.Error("skip should be unavailable once finalizing")
	}
}

func TestMonitorFinalizeTransitions(t *testing.T) {
	state := storage.NewSessionState()
	m := NewMonitor(state)

	if err := m.Finalize(); err == nil {
		t.Error("Finalize should fail while gathering")
	}

	state.Phase = models.PhaseSufficient
	if err := m.Finalize(); err != nil {
		t.Fatalf("Finalize from sufficient: %v", err)
	}
	if m.Phase() != models.PhaseFinalizing {
		t.Errorf("phase = %s, want finalizing", m.Phase())
	}

	// Finalizing is terminal and idempotent.
	if err := m.Finalize(); err != nil {
		t.Errorf("Finalize from finalizing: %v", err)
	}
}

func TestMonitorMissingCriticalInfo(t *testing.T) {
	state := storage.NewSessionState()
	m := NewMonitor(state)

	if got := len(m.MissingCriticalInfo()); got != len(models.AllCategories) {
		t.Errorf("missing = %d categories, want all %d", got, len(models.AllCategories))
	}

	for i := 0; i < 3; i++ {
		if err := m.RecordResponse(testQuestion(models.ProblemClarity, 0.2), "answer"); err != nil {
			t.Fatalf("RecordResponse: %v", err)
		}
	}
	missing := m.MissingCriticalInfo()
	if got := len(missing); got != len(models.AllCategories)-1 {
		t.Errorf("missing = %d categories, want %d", got, len(models.AllCategories)-1)
	}
	for _, msg := range missing {
		if msg == "Need more information about problem_clarity" {
			t.Error("problem_clarity at 0.6 should not be listed as missing")
		}
	}
}

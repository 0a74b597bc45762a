package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

func TestDemoCommand_NilSession(t *testing.T) {
	origSession := Session
	defer func() { Session = origSession }()
	Session = nil

	if err := demoCmd.RunE(demoCmd, []string{}); err == nil {
		t.Fatal("expected error when Session is nil")
	}
}

func TestDemoCommand_ProducesAssessment(t *testing.T) {
	s := withTestSession(t)

	if err := demoCmd.RunE(demoCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Monitor().Phase() == models.PhaseGathering {
		t.Error("demo should gather past the sufficiency threshold")
	}

	content, err := os.ReadFile(s.ExportPath())
	if err != nil {
		t.Fatalf("reading exported assessment: %v", err)
	}
	if !strings.Contains(string(content), "# Vision & Opportunity Assessment") {
		t.Error("exported document missing title header")
	}
	if !strings.Contains(string(content), "food service technology") {
		t.Error("canned industry answer should flow into the document")
	}
}

func TestDemoCommand_RejectsFinishedSession(t *testing.T) {
	s := withTestSession(t)
	answerUntilSufficient(t, s)

	err := demoCmd.RunE(demoCmd, []string{})
	if err == nil {
		t.Fatal("expected error when session is past gathering")
	}
	if !strings.Contains(err.Error(), "past gathering") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDemoAnswers_CoverAllCategories(t *testing.T) {
	for _, cat := range models.AllCategories {
		if len(demoAnswers[cat]) != 5 {
			t.Errorf("expected 5 canned answers for %s, got %d", cat, len(demoAnswers[cat]))
		}
	}
}

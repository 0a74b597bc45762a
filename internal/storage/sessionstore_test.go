package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

func TestSessionStore_LoadMissingFile(t *testing.T) {
	store := NewSessionStore(t.TempDir())

	state, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Phase != models.PhaseGathering {
		t.Errorf("expected fresh state in gathering phase, got %s", state.Phase)
	}
	if len(state.Categories) != len(models.AllCategories) {
		t.Errorf("expected %d categories, got %d", len(models.AllCategories), len(state.Categories))
	}
	if len(state.Playbooks) != len(models.AllPlaybooks) {
		t.Errorf("expected %d playbooks, got %d", len(models.AllPlaybooks), len(state.Playbooks))
	}
}

func TestSessionStore_SaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)

	state := NewSessionState()
	state.QuestionsAsked = 4
	state.Knowledge["target_market.audience"] = models.KnowledgeEntry{
		Key:    "target_market.audience",
		Value:  "working parents",
		Source: models.VisionOpportunity,
	}

	if err := store.Save(state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.QuestionsAsked != 4 {
		t.Errorf("expected 4 questions asked, got %d", loaded.QuestionsAsked)
	}
	entry, ok := loaded.Knowledge["target_market.audience"]
	if !ok {
		t.Fatal("expected knowledge key to survive round trip")
	}
	if entry.Value != "working parents" {
		t.Errorf("expected value to survive round trip, got %v", entry.Value)
	}
}

func TestSessionStore_MalformedFileFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	store := NewSessionStore(dir)
	state, err := store.Load()
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
	if state == nil {
		t.Fatal("expected a usable empty state alongside the error")
	}
	if state.QuestionsAsked != 0 {
		t.Errorf("expected empty state, got %d questions asked", state.QuestionsAsked)
	}
}

func TestSessionStore_UnknownKeyRoundTrips(t *testing.T) {
	dir := t.TempDir()
	seed := `{"session_id":"abc","questions_asked":2,"future_extension":{"nested":true}}`
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte(seed), 0o600); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	store := NewSessionStore(dir)
	state, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if state.QuestionsAsked != 2 {
		t.Errorf("expected 2 questions asked, got %d", state.QuestionsAsked)
	}

	if err := store.Save(state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	extension, ok := raw["future_extension"]
	if !ok {
		t.Fatal("expected unrecognized key to be preserved on save")
	}
	var parsed map[string]any
	if err := json.Unmarshal(extension, &parsed); err != nil {
		t.Fatalf("preserved key is not valid JSON: %v", err)
	}
	if parsed["nested"] != true {
		t.Errorf("expected nested value to round-trip, got %v", parsed["nested"])
	}
}

func TestSessionStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "base")
	store := NewSessionStore(dir)

	if err := store.Save(NewSessionState()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "session.json")); err != nil {
		t.Errorf("expected session file to exist: %v", err)
	}
}

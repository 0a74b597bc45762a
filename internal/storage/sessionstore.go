package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// ErrCorruptState indicates the persisted session file could not be parsed.
// Callers should warn and continue with the empty state that Load returns
// alongside this error; it is never fatal.
var ErrCorruptState = errors.New("session state file is corrupt")

// SessionStore persists the assessment session as a single JSON object,
// read and written wholesale. Top-level keys it does not recognize are
// preserved verbatim and round-trip on the next save.
type SessionStore interface {
	Load() (*models.SessionState, error)
	Save(state *models.SessionState) error
	Path() string
}

type fileSessionStore struct {
	basePath string
	// extras holds unrecognized top-level keys from the last load.
	extras map[string]json.RawMessage
}

// NewSessionStore creates a SessionStore backed by session.json under the
// given base directory.
func NewSessionStore(basePath string) SessionStore {
	return &fileSessionStore{
		basePath: basePath,
		extras:   make(map[string]json.RawMessage),
	}
}

func (s *fileSessionStore) Path() string {
	return filepath.Join(s.basePath, "session.json")
}

// NewSessionState returns a fresh session with all categories at zero and
// all playbooks initialized to not_started.
func NewSessionState() *models.SessionState {
	categories := make(map[models.QuestionCategory]models.CategoryProgress, len(models.AllCategories))
	for _, cat := range models.AllCategories {
		categories[cat] = models.CategoryProgress{Progress: 0, Status: models.StatusNeedsInput}
	}

	playbooks := make(map[models.PlaybookType]models.PlaybookState, len(models.AllPlaybooks))
	for _, pb := range models.AllPlaybooks {
		playbooks[pb] = models.PlaybookState{
			Type:        pb,
			Status:      models.PlaybookNotStarted,
			LastUpdated: time.Now().UTC(),
		}
	}

	return &models.SessionState{
		SessionID:  uuid.NewString(),
		Started:    time.Now().UTC(),
		Phase:      models.PhaseGathering,
		Categories: categories,
		Playbooks:  playbooks,
		Knowledge:  make(map[string]models.KnowledgeEntry),
	}
}

// Load reads the session file. A missing file yields a fresh empty state
// with no error. A malformed file yields a fresh empty state together with
// ErrCorruptState so the caller can warn.
func (s *fileSessionStore) Load() (*models.SessionState, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return NewSessionState(), nil
		}
		return NewSessionState(), fmt.Errorf("%w: reading %s: %v", ErrCorruptState, s.Path(), err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewSessionState(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	state := NewSessionState()
	known := knownSessionKeys()
	s.extras = make(map[string]json.RawMessage)
	for key, value := range raw {
		if _, ok := known[key]; !ok {
			s.extras[key] = value
		}
	}

	if err := json.Unmarshal(data, state); err != nil {
		return NewSessionState(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	// Re-fill maps the file may have omitted so callers never see nil.
	if state.Categories == nil {
		state.Categories = NewSessionState().Categories
	}
	if state.Playbooks == nil {
		state.Playbooks = NewSessionState().Playbooks
	}
	if state.Knowledge == nil {
		state.Knowledge = make(map[string]models.KnowledgeEntry)
	}
	return state, nil
}

// Save writes the whole session state plus any preserved unrecognized keys.
func (s *fileSessionStore) Save(state *models.SessionState) error {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return fmt.Errorf("saving session: creating directory: %w", err)
	}

	stateData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(stateData, &merged); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	for key, value := range s.extras {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if err := os.WriteFile(s.Path(), append(out, '\n'), 0o600); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// knownSessionKeys returns the set of top-level JSON keys SessionState owns.
// Derived from the struct's tags so the two can't drift apart.
func knownSessionKeys() map[string]struct{} {
	data, err := json.Marshal(models.SessionState{
		Responses:  []models.UserResponse{},
		Categories: map[models.QuestionCategory]models.CategoryProgress{},
		Playbooks:  map[models.PlaybookType]models.PlaybookState{},
		Knowledge:  map[string]models.KnowledgeEntry{},
		History:    []models.KnowledgeUpdate{},
	})
	if err != nil {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	keys := make(map[string]struct{}, len(m)+1)
	for k := range m {
		keys[k] = struct{}{}
	}
	// omitempty fields absent from the zero marshal are still ours.
	keys["knowledge_history"] = struct{}{}
	return keys
}

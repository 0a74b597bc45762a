// Package storage provides the persistence layer for assessment sessions:
// the in-memory shared knowledge store and the wholesale JSON session store.
package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// KnowledgeStore defines the shared knowledge mapping from dotted keys
// (e.g. "target_market.audience") to values gathered across playbooks.
// A missing key is a normal lookup miss, not an error.
type KnowledgeStore interface {
	// Set writes a value, overwriting any prior value for that key, and
	// records which playbook wrote it.
	Set(key string, value any, source models.PlaybookType)
	// Get returns the value for key and whether it has ever been written.
	Get(key string) (any, bool)
	// GetEntry returns the full entry including provenance.
	GetEntry(key string) (models.KnowledgeEntry, bool)
	// Find returns the first entry (in sorted key order) whose key
	// contains the given field pattern.
	Find(field string) (models.KnowledgeEntry, bool)
	// Keys returns all written keys in sorted order.
	Keys() []string
	// Snapshot returns an opaque marker for the store's current position.
	Snapshot() Snapshot
	// ChangedSince returns the set of keys written after the snapshot was
	// taken, in write order with duplicates removed.
	ChangedSince(snap Snapshot) []string
	// History returns the full update history, oldest first.
	History() []models.KnowledgeUpdate
	// Entries returns a copy of all entries keyed by dotted key.
	Entries() map[string]models.KnowledgeEntry
	// Replace swaps in a previously persisted entry set and history.
	Replace(entries map[string]models.KnowledgeEntry, history []models.KnowledgeUpdate)
}

// Snapshot marks a position in the knowledge store's update history.
type Snapshot struct {
	pos int
}

type memoryKnowledgeStore struct {
	entries map[string]models.KnowledgeEntry
	history []models.KnowledgeUpdate
	now     func() time.Time
}

// NewKnowledgeStore creates an empty in-memory KnowledgeStore. Entries live
// for the process lifetime unless persisted via the session store.
func NewKnowledgeStore() KnowledgeStore {
	return &memoryKnowledgeStore{
		entries: make(map[string]models.KnowledgeEntry),
		now:     time.Now,
	}
}

func (s *memoryKnowledgeStore) Set(key string, value any, source models.PlaybookType) {
	var old any
	if prev, ok := s.entries[key]; ok {
		old = prev.Value
	}

	ts := s.now()
	s.entries[key] = models.KnowledgeEntry{
		Key:     key,
		Value:   value,
		Source:  source,
		Updated: ts,
	}
	s.history = append(s.history, models.KnowledgeUpdate{
		Key:       key,
		OldValue:  old,
		NewValue:  value,
		Source:    source,
		Timestamp: ts,
	})
}

func (s *memoryKnowledgeStore) Get(key string) (any, bool) {
	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

func (s *memoryKnowledgeStore) GetEntry(key string) (models.KnowledgeEntry, bool) {
	entry, ok := s.entries[key]
	return entry, ok
}

func (s *memoryKnowledgeStore) Find(field string) (models.KnowledgeEntry, bool) {
	for _, key := range s.Keys() {
		if strings.Contains(key, field) {
			return s.entries[key], true
		}
	}
	return models.KnowledgeEntry{}, false
}

func (s *memoryKnowledgeStore) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *memoryKnowledgeStore) Snapshot() Snapshot {
	return Snapshot{pos: len(s.history)}
}

func (s *memoryKnowledgeStore) ChangedSince(snap Snapshot) []string {
	pos := snap.pos
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.history) {
		pos = len(s.history)
	}

	seen := make(map[string]struct{})
	var changed []string
	for _, update := range s.history[pos:] {
		if _, ok := seen[update.Key]; ok {
			continue
		}
		seen[update.Key] = struct{}{}
		changed = append(changed, update.Key)
	}
	return changed
}

func (s *memoryKnowledgeStore) History() []models.KnowledgeUpdate {
	result := make([]models.KnowledgeUpdate, len(s.history))
	copy(result, s.history)
	return result
}

func (s *memoryKnowledgeStore) Entries() map[string]models.KnowledgeEntry {
	cp := make(map[string]models.KnowledgeEntry, len(s.entries))
	for k, v := range s.entries {
		cp[k] = v
	}
	return cp
}

func (s *memoryKnowledgeStore) Replace(entries map[string]models.KnowledgeEntry, history []models.KnowledgeUpdate) {
	s.entries = make(map[string]models.KnowledgeEntry, len(entries))
	for k, v := range entries {
		s.entries[k] = v
	}
	s.history = make([]models.KnowledgeUpdate, len(history))
	copy(s.history, history)
}

package models

import "time"

// KnowledgeEntry is one dotted-key value in the shared knowledge store,
// together with the playbook that last wrote it. Last write wins; there is
// no versioning.
type KnowledgeEntry struct {
	Key     string       `json:"key"`
	Value   any          `json:"value"`
	Source  PlaybookType `json:"source"`
	Updated time.Time    `json:"updated"`
}

// KnowledgeUpdate is one line of the store's update history.
type KnowledgeUpdate struct {
	Key       string       `json:"key"`
	OldValue  any          `json:"old_value,omitempty"`
	NewValue  any          `json:"new_value"`
	Source    PlaybookType `json:"source"`
	Timestamp time.Time    `json:"timestamp"`
}

// CrossPlaybookUpdate is a pending notification that knowledge written by
// one playbook affects others. Updates are drained in a single propagation
// pass; they never chain transitively.
type CrossPlaybookUpdate struct {
	Source     PlaybookType   `json:"source_playbook"`
	Affected   []PlaybookType `json:"affected_playbooks"`
	Changes    map[string]any `json:"changes"`
	Timestamp  time.Time      `json:"timestamp"`
	Propagated bool           `json:"propagated"`
}

// Notification is one ordered delivery produced by an update pass.
type Notification struct {
	Target PlaybookType   `json:"target"`
	Kind   DependencyType `json:"kind"`
	Edge   DependencyEdge `json:"edge"`
}

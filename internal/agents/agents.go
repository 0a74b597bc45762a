// Package agents implements the template-based playbook agents. Every
// agent is deterministic: given the same knowledge contents it renders the
// same markdown fragment. No external calls are made; the hooks for a real
// model integration live behind the same interface.
package agents

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// Knowledge is the read-only view of the shared knowledge store an agent
// works from.
type Knowledge interface {
	// Get looks up an exact dotted key.
	Get(key string) (any, bool)
	// Find returns the first entry (in sorted key order) whose key
	// contains the given field pattern.
	Find(field string) (models.KnowledgeEntry, bool)
}

// Artifact is the result of one agent run.
type Artifact struct {
	Name     string
	Markdown string
	Cost     models.CostMetrics
}

// Agent is the capability contract every playbook variant satisfies.
// Generation either succeeds or reports a missing required input; it never
// partially fails.
type Agent interface {
	Name() string
	Playbook() models.PlaybookType
	// RequiredFields lists the knowledge-key patterns that must be
	// present before the agent can produce anything.
	RequiredFields() []string
	// ProduceArtifacts renders the agent's markdown fragments from the
	// current knowledge contents.
	ProduceArtifacts(k Knowledge) ([]Artifact, error)
}

// ErrMissingInput is the sentinel for a mandatory knowledge key being
// absent. The coordinator surfaces it as an unmet REQUIRES edge rather
// than a crash.
var ErrMissingInput = errors.New("missing required input")

// MissingInputError names the agent and field that blocked generation.
type MissingInputError struct {
	Agent string
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: missing required input %q", e.Agent, e.Field)
}

func (e *MissingInputError) Unwrap() error {
	return ErrMissingInput
}

// checkRequired returns a MissingInputError for the first absent field.
func checkRequired(name string, k Knowledge, fields []string) error {
	for _, field := range fields {
		if _, ok := k.Find(field); !ok {
			return &MissingInputError{Agent: name, Field: field}
		}
	}
	return nil
}

// lookupString returns the value for a field pattern rendered as a string,
// or the fallback when absent.
func lookupString(k Knowledge, field, fallback string) string {
	entry, ok := k.Find(field)
	if !ok {
		return fallback
	}
	return fmt.Sprintf("%v", entry.Value)
}

// lookupFloat returns the value for a field pattern coerced to float64, or
// the fallback when absent or non-numeric.
func lookupFloat(k Knowledge, field string, fallback float64) float64 {
	entry, ok := k.Find(field)
	if !ok {
		return fallback
	}
	switch v := entry.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}

// Registry builds the agent dispatch table, one agent per playbook. The
// asOf time flows into artifact citations so repeated runs over the same
// session produce identical output.
func Registry(asOf time.Time) map[models.PlaybookType]Agent {
	reg := make(map[models.PlaybookType]Agent, len(models.AllPlaybooks))
	reg[models.VisionOpportunity] = NewVisionOpportunityAgent(asOf)
	for _, spec := range playbookSpecs {
		reg[spec.playbook] = &templateAgent{spec: spec}
	}
	return reg
}

// ForPlaybook returns the agent variant for a playbook identifier.
func ForPlaybook(pb models.PlaybookType, asOf time.Time) (Agent, bool) {
	agent, ok := Registry(asOf)[pb]
	return agent, ok
}

// mapKnowledge adapts a plain map to the Knowledge interface, mainly for
// tests and the demo.
type mapKnowledge map[string]any

// NewMapKnowledge wraps a map as a Knowledge view.
func NewMapKnowledge(m map[string]any) Knowledge {
	return mapKnowledge(m)
}

func (m mapKnowledge) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapKnowledge) Find(field string) (models.KnowledgeEntry, bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(k, field) {
			return models.KnowledgeEntry{Key: k, Value: m[k]}, true
		}
	}
	return models.KnowledgeEntry{}, false
}

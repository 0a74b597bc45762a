package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fterranova/venture-playbooks/internal/storage"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

// Coordinator consumes the knowledge store and dependency graph to decide,
// after any field update, which dependent playbooks should be notified or
// unlocked. One coordinator is scoped to one assessment session; there is
// no process-wide state.
type Coordinator struct {
	graph     *Graph
	knowledge storage.KnowledgeStore
	state     *models.SessionState
	pending   []models.CrossPlaybookUpdate
	now       func() time.Time
}

// NewCoordinator wires a coordinator over the given graph, knowledge store,
// and session state. The graph's REQUIRES subgraph must already be
// validated; playbook priorities and unlock flags are initialized here.
func NewCoordinator(graph *Graph, knowledge storage.KnowledgeStore, state *models.SessionState) (*Coordinator, error) {
	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("initializing coordinator: %w", err)
	}

	c := &Coordinator{
		graph:     graph,
		knowledge: knowledge,
		state:     state,
		now:       time.Now,
	}

	for _, pb := range models.AllPlaybooks {
		ps := state.Playbooks[pb]
		ps.Type = pb
		if ps.Status == "" {
			ps.Status = models.PlaybookNotStarted
		}
		ps.Priority = PlaybookPriorities[pb]
		state.Playbooks[pb] = ps
	}
	c.refreshUnlocks()
	return c, nil
}

// SetKnowledge writes a value into the shared store, fires matching edges,
// and queues a cross-playbook update for the affected targets. The returned
// notifications are ordered per the graph's tie-break policy.
func (c *Coordinator) SetKnowledge(key string, value any, source models.PlaybookType) []models.Notification {
	snap := c.knowledge.Snapshot()
	c.knowledge.Set(key, value, source)
	changed := c.knowledge.ChangedSince(snap)

	fired := c.graph.OnUpdate(changed, source)
	if len(fired) > 0 {
		affected := make([]models.PlaybookType, 0, len(fired))
		for _, n := range fired {
			affected = append(affected, n.Target)
		}
		c.pending = append(c.pending, models.CrossPlaybookUpdate{
			Source:    source,
			Affected:  affected,
			Changes:   map[string]any{key: value},
			Timestamp: c.now().UTC(),
		})
	}

	c.refreshUnlocks()
	return fired
}

// ProcessPendingUpdates drains the pending update queue in one propagation
// pass and returns the notifications delivered. Updates fired during the
// pass do not chain; the queue snapshot taken at entry is all that runs.
func (c *Coordinator) ProcessPendingUpdates() []models.Notification {
	queue := c.pending
	c.pending = nil

	var delivered []models.Notification
	for i := range queue {
		update := &queue[i]
		changed := make([]string, 0, len(update.Changes))
		for key := range update.Changes {
			changed = append(changed, key)
		}
		sort.Strings(changed)
		delivered = append(delivered, c.graph.OnUpdate(changed, update.Source)...)
		update.Propagated = true
	}
	return delivered
}

// PendingUpdates returns the number of queued cross-playbook updates.
func (c *Coordinator) PendingUpdates() int {
	return len(c.pending)
}

// UpdateProgress records progress for a playbook, merges any produced
// artifacts, derives the playbook's status, and re-evaluates which other
// playbooks are now unlocked. Crossing the halfway mark publishes the
// playbook's key artifacts into shared knowledge.
func (c *Coordinator) UpdateProgress(pb models.PlaybookType, progress float64, artifacts map[string]string) error {
	ps, ok := c.state.Playbooks[pb]
	if !ok {
		return fmt.Errorf("updating progress: unknown playbook %q", pb)
	}

	old := ps.Progress
	ps.Progress = clamp01(progress)
	ps.LastUpdated = c.now().UTC()

	if len(artifacts) > 0 {
		if ps.Artifacts == nil {
			ps.Artifacts = make(map[string]string, len(artifacts))
		}
		for name, text := range artifacts {
			ps.Artifacts[name] = text
		}
	}

	switch {
	case ps.Progress >= 1.0:
		ps.Status = models.PlaybookComplete
	case ps.Progress >= sufficientThreshold:
		ps.Status = models.PlaybookSufficient
	case ps.Progress > 0:
		ps.Status = models.PlaybookInProgress
	}
	c.state.Playbooks[pb] = ps

	if ps.Progress >= 0.5 && old < 0.5 {
		c.extractSharedKnowledge(pb, artifacts)
	}

	c.refreshUnlocks()
	return nil
}

// Unlocked reports whether a playbook may start: every REQUIRES edge into
// it must have all of its declared fields present in the knowledge store.
func (c *Coordinator) Unlocked(pb models.PlaybookType) bool {
	for _, edge := range c.graph.RequiresInto(pb) {
		for _, field := range edge.TriggerFields {
			if !c.fieldPresent(field) {
				return false
			}
		}
	}
	return true
}

// Available returns playbooks that can be worked on right now: unlocked and
// not yet started, or already in progress / sufficient.
func (c *Coordinator) Available() []models.PlaybookType {
	var available []models.PlaybookType
	for _, pb := range models.AllPlaybooks {
		ps := c.state.Playbooks[pb]
		switch ps.Status {
		case models.PlaybookNotStarted:
			if ps.DependenciesMet {
				available = append(available, pb)
			}
		case models.PlaybookInProgress, models.PlaybookSufficient:
			available = append(available, pb)
		}
	}
	return available
}

// NextRecommended picks the next playbook to work on: highest priority band
// first, least progress within a band, enumeration order as the final tie
// break.
func (c *Coordinator) NextRecommended() (models.PlaybookType, bool) {
	available := c.Available()
	if len(available) == 0 {
		return "", false
	}
	sort.SliceStable(available, func(i, j int) bool {
		a, b := c.state.Playbooks[available[i]], c.state.Playbooks[available[j]]
		if a.Priority.Weight() != b.Priority.Weight() {
			return a.Priority.Weight() > b.Priority.Weight()
		}
		if a.Progress != b.Progress {
			return a.Progress < b.Progress
		}
		return models.PlaybookOrdinal(available[i]) < models.PlaybookOrdinal(available[j])
	})
	return available[0], true
}

// OverallProgress is the priority-weighted mean of playbook progress.
func (c *Coordinator) OverallProgress() float64 {
	var weighted, total float64
	for _, pb := range models.AllPlaybooks {
		ps := c.state.Playbooks[pb]
		w := ps.Priority.Weight()
		weighted += ps.Progress * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// PlaybookSummary is one row of the status summary.
type PlaybookSummary struct {
	Playbook        models.PlaybookType
	Status          models.PlaybookStatus
	Progress        float64
	Priority        models.PlaybookPriority
	DependenciesMet bool
	BlockedBy       []models.PlaybookType
}

// StatusSummary is a point-in-time view of the whole session.
type StatusSummary struct {
	OverallProgress float64
	Playbooks       []PlaybookSummary
	Available       []models.PlaybookType
	PendingUpdates  int
	KnowledgeItems  int
}

// Summary builds the status summary in playbook enumeration order.
func (c *Coordinator) Summary() StatusSummary {
	summary := StatusSummary{
		OverallProgress: c.OverallProgress(),
		Available:       c.Available(),
		PendingUpdates:  len(c.pending),
		KnowledgeItems:  len(c.knowledge.Keys()),
	}
	for _, pb := range models.AllPlaybooks {
		ps := c.state.Playbooks[pb]
		summary.Playbooks = append(summary.Playbooks, PlaybookSummary{
			Playbook:        pb,
			Status:          ps.Status,
			Progress:        ps.Progress,
			Priority:        ps.Priority,
			DependenciesMet: ps.DependenciesMet,
			BlockedBy:       ps.BlockedBy,
		})
	}
	return summary
}

// refreshUnlocks recomputes DependenciesMet and BlockedBy for every
// playbook from the current knowledge store contents.
func (c *Coordinator) refreshUnlocks() {
	for _, pb := range models.AllPlaybooks {
		ps := c.state.Playbooks[pb]
		ps.BlockedBy = nil
		for _, edge := range c.graph.RequiresInto(pb) {
			for _, field := range edge.TriggerFields {
				if !c.fieldPresent(field) {
					ps.BlockedBy = append(ps.BlockedBy, edge.From)
					break
				}
			}
		}
		ps.DependenciesMet = len(ps.BlockedBy) == 0
		c.state.Playbooks[pb] = ps
	}
}

// fieldPresent reports whether any knowledge key matches the field pattern.
func (c *Coordinator) fieldPresent(field string) bool {
	for _, key := range c.knowledge.Keys() {
		if strings.Contains(key, field) {
			return true
		}
	}
	return false
}

// sharedKnowledgeRules maps a playbook's artifact names to the dotted
// knowledge keys they publish under. Published keys embed the artifact name
// so downstream REQUIRES trigger fields match them by substring.
var sharedKnowledgeRules = map[models.PlaybookType]map[string]string{
	models.VisionOpportunity: {
		"vision_statement": "company_info.vision_statement",
		"tam_calculation":  "target_market.tam_calculation",
	},
	models.CustomerDiscovery: {
		"customer_personas": "target_market.customer_personas",
		"pain_points":       "target_market.pain_points",
		"jtbd":              "target_market.jtbd",
		"pricing_insights":  "financial_data.pricing_insights",
	},
	models.BusinessModel: {
		"revenue_model":    "financial_data.revenue_model",
		"unit_economics":   "financial_data.unit_economics",
		"pricing_strategy": "financial_data.pricing_strategy",
	},
	models.ProductStrategy: {
		"product_roadmap":        "product_details.product_roadmap",
		"feature_prioritization": "product_details.feature_prioritization",
		"value_proposition":      "product_details.value_proposition",
		"user_stories":           "product_details.user_stories",
		"target_segments":        "product_details.target_segments",
		"technical_requirements": "product_details.technical_requirements",
	},
}

func (c *Coordinator) extractSharedKnowledge(pb models.PlaybookType, artifacts map[string]string) {
	rules, ok := sharedKnowledgeRules[pb]
	if !ok {
		return
	}
	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if key, ok := rules[name]; ok {
			c.SetKnowledge(key, artifacts[name], pb)
		}
	}
}

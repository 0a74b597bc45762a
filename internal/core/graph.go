package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// Graph holds the static dependency edges between playbooks. Edges are
// immutable configuration, registered once at load time.
type Graph struct {
	edges []models.DependencyEdge
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{}
}

// RegisterEdge adds a static edge. Duplicate edges are allowed but
// redundant: registering the same edge twice has no further effect.
func (g *Graph) RegisterEdge(edge models.DependencyEdge) error {
	if !models.IsValidPlaybook(edge.From) {
		return fmt.Errorf("registering edge: unknown playbook %q", edge.From)
	}
	if !models.IsValidPlaybook(edge.To) {
		return fmt.Errorf("registering edge: unknown playbook %q", edge.To)
	}
	switch edge.Kind {
	case models.DepRequires, models.DepInfluences, models.DepUpdates, models.DepSyncs:
	default:
		return fmt.Errorf("registering edge: unknown dependency kind %q", edge.Kind)
	}
	if edge.Priority < 1 || edge.Priority > 10 {
		return fmt.Errorf("registering edge: priority %d out of range [1,10]", edge.Priority)
	}

	for _, existing := range g.edges {
		if edgesEqual(existing, edge) {
			return nil
		}
	}
	g.edges = append(g.edges, edge)
	return nil
}

// Edges returns a copy of all registered edges.
func (g *Graph) Edges() []models.DependencyEdge {
	result := make([]models.DependencyEdge, len(g.edges))
	copy(result, g.edges)
	return result
}

// Validate checks that the REQUIRES subgraph is acyclic, failing fast on a
// cycle. Advisory kinds (INFLUENCES, UPDATES, SYNCS) may cycle since they
// never gate progress.
func (g *Graph) Validate() error {
	adjacency := make(map[models.PlaybookType][]models.PlaybookType)
	for _, edge := range g.edges {
		if edge.Kind == models.DepRequires {
			adjacency[edge.From] = append(adjacency[edge.From], edge.To)
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	colors := make(map[models.PlaybookType]int)

	var visit func(node models.PlaybookType, path []models.PlaybookType) error
	visit = func(node models.PlaybookType, path []models.PlaybookType) error {
		colors[node] = visiting
		path = append(path, node)
		for _, next := range adjacency[node] {
			switch colors[next] {
			case visiting:
				return fmt.Errorf("requires cycle detected: %s -> %s", formatPath(path), next)
			case unvisited:
				if err := visit(next, path); err != nil {
					return err
				}
			}
		}
		colors[node] = done
		return nil
	}

	for _, pb := range models.AllPlaybooks {
		if colors[pb] == unvisited {
			if err := visit(pb, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// OnUpdate returns the notifications to deliver after the given keys
// changed: one per edge out of source whose trigger fields intersect the
// changed keys. Notifications are ordered by descending edge priority, then
// by the fixed enumeration order of the target playbook, so effects are
// deterministic. This is a single pass; notifications never chain.
func (g *Graph) OnUpdate(changedKeys []string, source models.PlaybookType) []models.Notification {
	var fired []models.Notification
	for _, edge := range g.edges {
		if edge.From != source {
			continue
		}
		if !triggersMatch(edge.TriggerFields, changedKeys) {
			continue
		}
		fired = append(fired, models.Notification{
			Target: edge.To,
			Kind:   edge.Kind,
			Edge:   edge,
		})
	}

	sort.SliceStable(fired, func(i, j int) bool {
		if fired[i].Edge.Priority != fired[j].Edge.Priority {
			return fired[i].Edge.Priority > fired[j].Edge.Priority
		}
		return models.PlaybookOrdinal(fired[i].Target) < models.PlaybookOrdinal(fired[j].Target)
	})
	return fired
}

// RequiresInto returns the REQUIRES edges whose target is the given
// playbook.
func (g *Graph) RequiresInto(target models.PlaybookType) []models.DependencyEdge {
	var result []models.DependencyEdge
	for _, edge := range g.edges {
		if edge.Kind == models.DepRequires && edge.To == target {
			result = append(result, edge)
		}
	}
	return result
}

// triggersMatch reports whether any trigger field pattern matches any
// changed key. A field matches a key when the key contains the field, so
// the pattern "target_market" covers "target_market.tam".
func triggersMatch(triggerFields, changedKeys []string) bool {
	for _, key := range changedKeys {
		for _, field := range triggerFields {
			if strings.Contains(key, field) {
				return true
			}
		}
	}
	return false
}

func edgesEqual(a, b models.DependencyEdge) bool {
	if a.From != b.From || a.To != b.To || a.Kind != b.Kind || a.Priority != b.Priority {
		return false
	}
	return stringSlicesEqual(a.TriggerFields, b.TriggerFields) &&
		stringSlicesEqual(a.UpdateTargets, b.UpdateTargets)
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatPath(path []models.PlaybookType) string {
	parts := make([]string, len(path))
	for i, pb := range path {
		parts[i] = string(pb)
	}
	return strings.Join(parts, " -> ")
}

package core

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// Notifications from one update are always sorted by descending priority
// with the target's enumeration order breaking ties, regardless of the
// order edges were registered in.
func TestOnUpdateOrderingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := NewGraph()
		source := models.VisionOpportunity

		targets := rapid.SliceOfNDistinct(
			rapid.SampledFrom(models.AllPlaybooks[1:]), 1, 10,
			func(pb models.PlaybookType) models.PlaybookType { return pb },
		).Draw(t, "targets")

		for _, target := range targets {
			edge := models.DependencyEdge{
				From:          source,
				To:            target,
				Kind:          models.DepInfluences,
				TriggerFields: []string{"vision"},
				Priority:      rapid.IntRange(1, 10).Draw(t, "priority"),
			}
			if err := g.RegisterEdge(edge); err != nil {
				t.Fatalf("RegisterEdge: %v", err)
			}
		}

		fired := g.OnUpdate([]string{"company_info.vision_statement"}, source)
		if len(fired) != len(targets) {
			t.Fatalf("fired %d notifications, want %d", len(fired), len(targets))
		}

		for i := 1; i < len(fired); i++ {
			prev, cur := fired[i-1], fired[i]
			if prev.Edge.Priority < cur.Edge.Priority {
				t.Fatalf("priority order violated at %d: %d before %d",
					i, prev.Edge.Priority, cur.Edge.Priority)
			}
			if prev.Edge.Priority == cur.Edge.Priority &&
				models.PlaybookOrdinal(prev.Target) > models.PlaybookOrdinal(cur.Target) {
				t.Fatalf("tie-break order violated at %d: %s before %s",
					i, prev.Target, cur.Target)
			}
		}
	})
}

// OnUpdate is a single pass: running it twice with the same inputs fires
// the same notifications, and no notification ever chains into more.
func TestOnUpdateSinglePassProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, err := NewDefaultGraph()
		if err != nil {
			t.Fatalf("NewDefaultGraph: %v", err)
		}

		source := rapid.SampledFrom(models.AllPlaybooks).Draw(t, "source")
		keys := rapid.SliceOfN(
			rapid.StringMatching(`[a-z_]{3,20}\.[a-z_]{3,20}`), 1, 5,
		).Draw(t, "keys")

		first := g.OnUpdate(keys, source)
		second := g.OnUpdate(keys, source)

		if len(first) != len(second) {
			t.Fatalf("pass sizes differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].Target != second[i].Target || first[i].Kind != second[i].Kind {
				t.Fatalf("notification %d differs between passes", i)
			}
		}

		// Every notification corresponds to an edge out of the source.
		for _, n := range first {
			if n.Edge.From != source {
				t.Fatalf("notification fired for edge from %s, source was %s", n.Edge.From, source)
			}
		}
	})
}

package core

import (
	"testing"

	"github.com/fterranova/venture-playbooks/internal/storage"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

func newTestCoordinator(t *testing.T) (*Coordinator, storage.KnowledgeStore, *models.SessionState) {
	t.Helper()
	graph, err := NewDefaultGraph()
	if err != nil {
		t.Fatalf("NewDefaultGraph: %v", err)
	}
	state := storage.NewSessionState()
	knowledge := storage.NewKnowledgeStore()
	coord, err := NewCoordinator(graph, knowledge, state)
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}
	return coord, knowledge, state
}

func TestCoordinatorInitializesPlaybooks(t *testing.T) {
	_, _, state := newTestCoordinator(t)

	for _, pb := range models.AllPlaybooks {
		ps := state.Playbooks[pb]
		if ps.Status != models.PlaybookNotStarted {
			t.Errorf("%s status = %s, want not_started", pb, ps.Status)
		}
		if ps.Priority != PlaybookPriorities[pb] {
			t.Errorf("%s priority = %s, want %s", pb, ps.Priority, PlaybookPriorities[pb])
		}
	}

	// Ungated playbooks start unlocked, gated ones blocked.
	if !state.Playbooks[models.CustomerDiscovery].DependenciesMet {
		t.Error("customer_discovery should start unlocked")
	}
	if state.Playbooks[models.ProductStrategy].DependenciesMet {
		t.Error("product_strategy should start blocked")
	}
}

func TestCoordinatorUnlockViaKnowledge(t *testing.T) {
	coord, _, state := newTestCoordinator(t)

	if coord.Unlocked(models.ProductStrategy) {
		t.Fatal("product_strategy unlocked with empty knowledge")
	}

	coord.SetKnowledge("target_market.customer_personas", "SMB owners", models.CustomerDiscovery)
	coord.SetKnowledge("target_market.pain_points", "manual work", models.CustomerDiscovery)
	if coord.Unlocked(models.ProductStrategy) {
		t.Fatal("product_strategy unlocked with only two of three fields")
	}

	coord.SetKnowledge("target_market.jtbd", "save time", models.CustomerDiscovery)
	if !coord.Unlocked(models.ProductStrategy) {
		t.Fatal("product_strategy still blocked with all trigger fields present")
	}
	if !state.Playbooks[models.ProductStrategy].DependenciesMet {
		t.Error("DependenciesMet not refreshed")
	}
	if len(state.Playbooks[models.ProductStrategy].BlockedBy) != 0 {
		t.Errorf("BlockedBy = %v, want empty", state.Playbooks[models.ProductStrategy].BlockedBy)
	}
}

func TestCoordinatorSetKnowledgeQueuesUpdates(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	fired := coord.SetKnowledge("target_market.customer_personas", "personas", models.CustomerDiscovery)
	if len(fired) != 1 {
		t.Fatalf("fired = %d notifications, want 1", len(fired))
	}
	if fired[0].Target != models.ProductStrategy {
		t.Errorf("target = %s, want product_strategy", fired[0].Target)
	}
	if coord.PendingUpdates() != 1 {
		t.Errorf("pending = %d, want 1", coord.PendingUpdates())
	}

	delivered := coord.ProcessPendingUpdates()
	if len(delivered) != 1 {
		t.Errorf("delivered = %d, want 1", len(delivered))
	}
	if coord.PendingUpdates() != 0 {
		t.Errorf("pending = %d after processing, want 0", coord.PendingUpdates())
	}
}

func TestCoordinatorUpdateProgressStatusLadder(t *testing.T) {
	coord, _, state := newTestCoordinator(t)

	cases := []struct {
		progress float64
		want     models.PlaybookStatus
	}{
		{0.3, models.PlaybookInProgress},
		{0.8, models.PlaybookSufficient},
		{1.0, models.PlaybookComplete},
	}
	for _, tc := range cases {
		if err := coord.UpdateProgress(models.CustomerDiscovery, tc.progress, nil); err != nil {
			t.Fatalf("UpdateProgress(%v): %v", tc.progress, err)
		}
		if got := state.Playbooks[models.CustomerDiscovery].Status; got != tc.want {
			t.Errorf("status at %v = %s, want %s", tc.progress, got, tc.want)
		}
	}

	if err := coord.UpdateProgress("bogus", 0.5, nil); err == nil {
		t.Error("expected error for unknown playbook")
	}
}

func TestCoordinatorSharedKnowledgeExtraction(t *testing.T) {
	coord, knowledge, _ := newTestCoordinator(t)

	artifacts := map[string]string{
		"customer_personas": "persona doc",
		"pain_points":       "pain doc",
		"jtbd":              "jtbd doc",
	}
	// Crossing the halfway mark publishes the artifacts as shared keys.
	if err := coord.UpdateProgress(models.CustomerDiscovery, 0.6, artifacts); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}

	for _, key := range []string{
		"target_market.customer_personas",
		"target_market.pain_points",
		"target_market.jtbd",
	} {
		if _, ok := knowledge.Get(key); !ok {
			t.Errorf("shared key %q not published", key)
		}
	}

	// The published keys unlock the downstream gated playbook.
	if !coord.Unlocked(models.ProductStrategy) {
		t.Error("product_strategy should unlock after customer discovery artifacts")
	}
}

func TestCoordinatorSharedKnowledgeOnlyOnCrossing(t *testing.T) {
	coord, knowledge, _ := newTestCoordinator(t)

	if err := coord.UpdateProgress(models.BusinessModel, 0.6, map[string]string{"revenue_model": "v1"}); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	before := len(knowledge.History())

	// Already past the mark; further updates do not republish.
	if err := coord.UpdateProgress(models.BusinessModel, 0.7, map[string]string{"revenue_model": "v2"}); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if got := len(knowledge.History()); got != before {
		t.Errorf("history grew from %d to %d without crossing the mark", before, got)
	}
}

func TestCoordinatorNextRecommended(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	// All high-priority unlocked playbooks at zero progress: enumeration
	// order decides, and vision_opportunity comes first.
	pb, ok := coord.NextRecommended()
	if !ok {
		t.Fatal("no recommendation with available playbooks")
	}
	if pb != models.VisionOpportunity {
		t.Errorf("recommended %s, want vision_opportunity", pb)
	}

	// Progress on vision moves the recommendation to the next high band
	// playbook with less progress.
	if err := coord.UpdateProgress(models.VisionOpportunity, 0.4, nil); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	pb, ok = coord.NextRecommended()
	if !ok {
		t.Fatal("no recommendation")
	}
	if pb != models.CustomerDiscovery {
		t.Errorf("recommended %s, want customer_discovery", pb)
	}
}

func TestCoordinatorOverallProgressWeighted(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	if got := coord.OverallProgress(); got != 0 {
		t.Fatalf("initial overall = %v, want 0", got)
	}

	if err := coord.UpdateProgress(models.VisionOpportunity, 1.0, nil); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if err := coord.UpdateProgress(models.BrandCommunication, 1.0, nil); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}

	var total float64
	for _, pb := range models.AllPlaybooks {
		total += PlaybookPriorities[pb].Weight()
	}
	want := (models.PriorityHigh.Weight() + models.PriorityMediumLow.Weight()) / total
	if got := coord.OverallProgress(); got != want {
		t.Errorf("overall = %v, want %v", got, want)
	}
}

func TestCoordinatorSummary(t *testing.T) {
	coord, knowledge, _ := newTestCoordinator(t)
	knowledge.Set("problem_clarity.problem", "slow reporting", models.VisionOpportunity)

	summary := coord.Summary()
	if len(summary.Playbooks) != len(models.AllPlaybooks) {
		t.Errorf("summary rows = %d, want %d", len(summary.Playbooks), len(models.AllPlaybooks))
	}
	if summary.KnowledgeItems != 1 {
		t.Errorf("knowledge items = %d, want 1", summary.KnowledgeItems)
	}
	for i, row := range summary.Playbooks {
		if row.Playbook != models.AllPlaybooks[i] {
			t.Errorf("row %d = %s, want enumeration order", i, row.Playbook)
		}
	}
}

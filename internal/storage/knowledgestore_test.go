package storage

import (
	"reflect"
	"testing"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

func TestKnowledgeStore_SetAndGet(t *testing.T) {
	store := NewKnowledgeStore()

	store.Set("target_market.audience", "working parents", models.VisionOpportunity)

	value, ok := store.Get("target_market.audience")
	if !ok {
		t.Fatal("expected key to be present")
	}
	if value != "working parents" {
		t.Errorf("expected %q, got %v", "working parents", value)
	}
}

func TestKnowledgeStore_GetMissingKey(t *testing.T) {
	store := NewKnowledgeStore()

	if _, ok := store.Get("never.written"); ok {
		t.Error("expected lookup miss for unwritten key")
	}
}

func TestKnowledgeStore_LastWriteWins(t *testing.T) {
	store := NewKnowledgeStore()

	store.Set("company_info.vision", "v1", models.VisionOpportunity)
	store.Set("company_info.vision", "v2", models.CustomerDiscovery)

	entry, ok := store.GetEntry("company_info.vision")
	if !ok {
		t.Fatal("expected key to be present")
	}
	if entry.Value != "v2" {
		t.Errorf("expected last write to win, got %v", entry.Value)
	}
	if entry.Source != models.CustomerDiscovery {
		t.Errorf("expected provenance %s, got %s", models.CustomerDiscovery, entry.Source)
	}
}

func TestKnowledgeStore_ChangedSince(t *testing.T) {
	store := NewKnowledgeStore()
	store.Set("a.one", 1, models.VisionOpportunity)

	snap := store.Snapshot()

	store.Set("b.two", 2, models.VisionOpportunity)
	store.Set("c.three", 3, models.BusinessModel)
	store.Set("b.two", 22, models.BusinessModel) // rewrite, deduplicated

	changed := store.ChangedSince(snap)
	want := []string{"b.two", "c.three"}
	if !reflect.DeepEqual(changed, want) {
		t.Errorf("expected changed keys %v, got %v", want, changed)
	}
}

func TestKnowledgeStore_ChangedSinceEmptyDiff(t *testing.T) {
	store := NewKnowledgeStore()
	store.Set("a.one", 1, models.VisionOpportunity)

	snap := store.Snapshot()
	if changed := store.ChangedSince(snap); len(changed) != 0 {
		t.Errorf("expected no changed keys, got %v", changed)
	}
}

func TestKnowledgeStore_HistoryRecordsOldValue(t *testing.T) {
	store := NewKnowledgeStore()
	store.Set("financial_data.arpu", 5000, models.BusinessModel)
	store.Set("financial_data.arpu", 6000, models.FinancialPlanning)

	history := store.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0].OldValue != nil {
		t.Errorf("expected nil old value on first write, got %v", history[0].OldValue)
	}
	if history[1].OldValue != 5000 {
		t.Errorf("expected old value 5000, got %v", history[1].OldValue)
	}
}

func TestKnowledgeStore_Replace(t *testing.T) {
	store := NewKnowledgeStore()
	store.Set("a.one", 1, models.VisionOpportunity)

	entries := map[string]models.KnowledgeEntry{
		"x.y": {Key: "x.y", Value: "z", Source: models.Partnerships},
	}
	store.Replace(entries, nil)

	if _, ok := store.Get("a.one"); ok {
		t.Error("expected replaced store to drop prior keys")
	}
	if value, ok := store.Get("x.y"); !ok || value != "z" {
		t.Errorf("expected x.y=z after replace, got %v (present=%v)", value, ok)
	}
	if len(store.History()) != 0 {
		t.Error("expected empty history after replace with nil history")
	}
}

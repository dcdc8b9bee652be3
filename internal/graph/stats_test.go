package graph

import (
	"context"
	"testing"
	"time"
)

func TestStatsCounts(t *testing.T) {
	e := New(seedAliceGraph(t))

	stats, err := e.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.EntityCount != 3 {
		t.Errorf("EntityCount = %d, want 3", stats.EntityCount)
	}
	if stats.LinkCount != 2 {
		t.Errorf("LinkCount = %d, want 2", stats.LinkCount)
	}
	if stats.ReferenceCount != 2 {
		t.Errorf("ReferenceCount = %d, want 2", stats.ReferenceCount)
	}
	if stats.EntitiesByType[TypePerson] != 1 {
		t.Errorf("EntitiesByType[person] = %d, want 1", stats.EntitiesByType[TypePerson])
	}
	if stats.LinksByRelationship[RelCollaboratesOn] != 1 {
		t.Errorf("LinksByRelationship = %v", stats.LinksByRelationship)
	}
	if stats.ReferencesByDomain[DomainContact] != 1 || stats.ReferencesByDomain[DomainMemory] != 1 {
		t.Errorf("ReferencesByDomain = %v", stats.ReferencesByDomain)
	}
}

func TestStatsMostConnected(t *testing.T) {
	f := newFakeStore()
	f.addEntity("hub", TypeTopic, "Hub")
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		f.addEntity(id, TypePerson, id)
		f.addLink("hub", id, RelRelatedTo, 0.5)
	}
	e := New(f)

	stats, err := e.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if len(stats.MostConnected) != 10 {
		t.Fatalf("MostConnected has %d entries, want 10", len(stats.MostConnected))
	}
	if stats.MostConnected[0].Entity.ID != "hub" || stats.MostConnected[0].LinkCount != 12 {
		t.Errorf("top = %s x%d, want hub x12", stats.MostConnected[0].Entity.ID, stats.MostConnected[0].LinkCount)
	}
}

func TestStatsRecentActivity(t *testing.T) {
	now := time.Now()
	f := newFakeStore()
	f.addEntity("a", TypePerson, "A")
	f.addEntity("b", TypePerson, "B")
	f.links = append(f.links,
		EntityLink{SourceEntityID: "a", TargetEntityID: "b", RelationshipType: RelKnows, Weight: 0.5, LastSeenAt: now.Add(-time.Hour)},
		EntityLink{SourceEntityID: "a", TargetEntityID: "b", RelationshipType: RelKnows, Weight: 0.5, LastSeenAt: now.AddDate(0, 0, -3)},
		EntityLink{SourceEntityID: "a", TargetEntityID: "b", RelationshipType: RelKnows, Weight: 0.5, LastSeenAt: now.AddDate(0, 0, -20)},
		EntityLink{SourceEntityID: "a", TargetEntityID: "b", RelationshipType: RelKnows, Weight: 0.5, LastSeenAt: now.AddDate(0, 0, -90)},
	)
	e := New(f)

	stats, err := e.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	ra := stats.RecentActivity
	if ra.LastDay != 1 || ra.LastWeek != 2 || ra.LastMonth != 3 {
		t.Errorf("RecentActivity = %+v, want 1/2/3", ra)
	}
}

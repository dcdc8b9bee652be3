package graph

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestQueryLabelMatch(t *testing.T) {
	e := New(seedAliceGraph(t))

	res, err := e.Query(context.Background(), "Alice", QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if len(res.Entities) == 0 {
		t.Fatal("expected entities")
	}
	if res.Entities[0].Entity.ID != "alice" {
		t.Errorf("top entity = %s, want alice", res.Entities[0].Entity.ID)
	}
	if res.Entities[0].Score != labelMatchScore {
		t.Errorf("label match score = %f, want %f", res.Entities[0].Score, labelMatchScore)
	}
	if !strings.Contains(res.QueryContext, "Alice") {
		t.Errorf("context summary %q should mention the top entity", res.QueryContext)
	}
}

func TestQueryExpandsFromSeeds(t *testing.T) {
	e := New(seedAliceGraph(t))

	res, err := e.Query(context.Background(), "Alice", QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	// Expansion should pull in phoenix and acme, rescaled by the seed score.
	ids := make(map[string]GraphNode)
	for _, n := range res.Entities {
		ids[n.Entity.ID] = n
	}
	phoenix, ok := ids["phoenix"]
	if !ok {
		t.Fatal("expansion did not reach phoenix")
	}
	if phoenix.Score >= labelMatchScore {
		t.Errorf("expanded score %f should be rescaled below the seed's", phoenix.Score)
	}
}

func TestQueryNoDuplicates(t *testing.T) {
	f := seedAliceGraph(t)
	e := New(f)
	e.SetSearcher(&fakeSearcher{
		hits: []Hit{{Domain: DomainMemory, ItemID: "memory-1", Content: "met alice", Similarity: 0.95}},
		entities: map[string][]Entity{
			"memory|memory-1": {f.entities["alice"]},
		},
	})

	res, err := e.Query(context.Background(), "Alice", QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	seen := make(map[string]bool)
	for _, n := range res.Entities {
		if seen[n.Entity.ID] {
			t.Errorf("duplicate entity %s", n.Entity.ID)
		}
		seen[n.Entity.ID] = true
	}
	// Alice matched by label (0.9) and semantically (0.95*0.8=0.76); the
	// higher score survives.
	for _, n := range res.Entities {
		if n.Entity.ID == "alice" && n.Score != labelMatchScore {
			t.Errorf("alice score = %f, want label match %f", n.Score, labelMatchScore)
		}
	}
}

func TestQuerySemanticFailureSkipsStage(t *testing.T) {
	e := New(seedAliceGraph(t))
	e.SetSearcher(&fakeSearcher{err: errors.New("vector index offline")})

	res, err := e.Query(context.Background(), "Alice", QueryOptions{})
	if err != nil {
		t.Fatalf("Query must not fail when semantic search fails: %v", err)
	}
	if len(res.Entities) == 0 {
		t.Error("label-match results should survive a failed semantic stage")
	}
}

func TestQuerySemanticItemsAndEntities(t *testing.T) {
	f := newFakeStore()
	f.addEntity("trip", TypeEvent, "Road Trip")
	e := New(f)
	e.SetSearcher(&fakeSearcher{
		hits: []Hit{{Domain: DomainMemory, ItemID: "m9", Content: "planning the road trip", Similarity: 0.9}},
		entities: map[string][]Entity{
			"memory|m9": {f.entities["trip"]},
		},
	})

	res, err := e.Query(context.Background(), "vacation plans", QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if len(res.RelevantItems) != 1 || res.RelevantItems[0].ItemID != "m9" {
		t.Fatalf("RelevantItems = %v, want the semantic hit", res.RelevantItems)
	}
	if res.RelevantItems[0].Score != 0.9 {
		t.Errorf("item score = %f, want similarity 0.9", res.RelevantItems[0].Score)
	}

	found := false
	for _, n := range res.Entities {
		if n.Entity.ID == "trip" {
			found = true
			if diff := n.Score - 0.9*semanticScoreScale; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("semantic entity score = %f, want %f", n.Score, 0.9*semanticScoreScale)
			}
			if n.Depth != 1 {
				t.Errorf("semantic entity depth = %d, want 1", n.Depth)
			}
		}
	}
	if !found {
		t.Error("entity linked to semantic hit not merged")
	}
}

func TestQueryCrossDomainEnrichment(t *testing.T) {
	f := seedAliceGraph(t)
	e := New(f)
	e.SetResolver(&fakeResolver{items: map[string]DomainItem{
		"contact|contact-1": {Domain: DomainContact, ItemID: "contact-1", Content: "Alice Smith, +1 555", CreatedAt: time.Now()},
		"memory|memory-1":   {Domain: DomainMemory, ItemID: "memory-1", Content: "Alice joined the project", CreatedAt: time.Now()},
	}})

	res, err := e.Query(context.Background(), "Alice", QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if len(res.Connections) == 0 {
		t.Fatal("expected cross-domain connections for alice")
	}
	if res.Connections[0].Entity.ID != "alice" {
		t.Errorf("connection entity = %s, want alice", res.Connections[0].Entity.ID)
	}

	if len(res.RelevantItems) != 2 {
		t.Fatalf("RelevantItems = %v, want both resolved records", res.RelevantItems)
	}
	for _, it := range res.RelevantItems {
		// entityScore * confidence = 0.9 * 0.9
		if diff := it.Score - 0.81; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("item %s score = %f, want 0.81", it.ItemID, it.Score)
		}
	}
}

func TestQueryTruncation(t *testing.T) {
	f := newFakeStore()
	f.addEntity("hub", TypeTopic, "Budget")
	for i := 0; i < 30; i++ {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		f.addEntity(id, TypePerson, "Person")
		f.addLink("hub", id, RelRelatedTo, 0.9)
	}
	e := New(f)

	res, err := e.Query(context.Background(), "Budget", QueryOptions{MaxEntities: 5})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Entities) != 5 {
		t.Errorf("got %d entities, want cap of 5", len(res.Entities))
	}
}

func TestQueryNoMatches(t *testing.T) {
	e := New(newFakeStore())

	res, err := e.Query(context.Background(), "nothing here", QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Entities) != 0 || len(res.RelevantItems) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
	if !strings.Contains(res.QueryContext, "No knowledge graph matches") {
		t.Errorf("QueryContext = %q", res.QueryContext)
	}
}

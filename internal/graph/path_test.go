package graph

import (
	"context"
	"testing"
)

func chainStore() *fakeStore {
	f := newFakeStore()
	f.addEntity("a", TypePerson, "A")
	f.addEntity("b", TypePerson, "B")
	f.addEntity("c", TypeTopic, "C")
	f.addEntity("d", TypePlace, "D")
	f.addEntity("island", TypePlace, "Island")
	f.addLink("a", "b", RelKnows, 0.9)
	f.addLink("b", "c", RelDiscussed, 0.9)
	f.addLink("c", "d", RelLocatedIn, 0.9)
	// shortcut: a-c directly
	f.addLink("a", "c", RelDiscussed, 0.2)
	return f
}

func TestShortestPathPicksFewestHops(t *testing.T) {
	e := New(chainStore())

	path, err := e.ShortestPath(context.Background(), "a", "d", DefaultPathDepth)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if path == nil {
		t.Fatal("expected path, got nil")
	}
	// a -> c (direct, low weight but fewer hops) -> d
	if len(path) != 3 {
		t.Fatalf("path length = %d, want 3", len(path))
	}
	if path[0].Entity.ID != "a" || path[1].Entity.ID != "c" || path[2].Entity.ID != "d" {
		t.Errorf("path = %s %s %s, want a c d", path[0].Entity.ID, path[1].Entity.ID, path[2].Entity.ID)
	}
	if path[0].Relationship != "" {
		t.Errorf("first step relationship = %q, want empty", path[0].Relationship)
	}
	if path[2].Relationship != RelLocatedIn {
		t.Errorf("last hop relationship = %q, want %q", path[2].Relationship, RelLocatedIn)
	}
}

func TestShortestPathSelf(t *testing.T) {
	e := New(chainStore())

	path, err := e.ShortestPath(context.Background(), "a", "a", DefaultPathDepth)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if len(path) != 1 || path[0].Entity.ID != "a" {
		t.Errorf("self path = %v, want single step", path)
	}

	// Even with zero depth budget.
	path, err = e.ShortestPath(context.Background(), "a", "a", 0)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if len(path) != 1 {
		t.Errorf("self path at depth 0 = %v, want single step", path)
	}
}

func TestShortestPathZeroDepth(t *testing.T) {
	e := New(chainStore())

	path, err := e.ShortestPath(context.Background(), "a", "b", 0)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if path != nil {
		t.Errorf("depth 0 path = %v, want nil", path)
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	e := New(chainStore())

	path, err := e.ShortestPath(context.Background(), "a", "island", DefaultPathDepth)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if path != nil {
		t.Errorf("path to disconnected node = %v, want nil", path)
	}
}

func TestShortestPathMissingEndpoints(t *testing.T) {
	e := New(chainStore())
	ctx := context.Background()

	for _, pair := range [][2]string{{"nobody", "a"}, {"a", "nobody"}, {"x", "y"}} {
		path, err := e.ShortestPath(ctx, pair[0], pair[1], DefaultPathDepth)
		if err != nil {
			t.Fatalf("ShortestPath(%s, %s): %v", pair[0], pair[1], err)
		}
		if path != nil {
			t.Errorf("ShortestPath(%s, %s) = %v, want nil", pair[0], pair[1], path)
		}
	}
}

func TestShortestPathDepthLimit(t *testing.T) {
	e := New(chainStore())

	// b -> c -> d is two hops; a limit of 1 cannot reach.
	path, err := e.ShortestPath(context.Background(), "b", "d", 1)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if path != nil {
		t.Errorf("path within depth 1 = %v, want nil", path)
	}
}

package graph

import (
	"context"
	"fmt"
)

// PathStep is one entity along a shortest path, with the relationship that
// led to it. The first step of a path has no relationship.
type PathStep struct {
	Entity       Entity           `json:"entity"`
	Relationship RelationshipType `json:"relationship,omitempty"`
}

// DefaultPathDepth bounds shortest-path searches.
const DefaultPathDepth = 5

// ShortestPath finds a minimum-hop-count path between two entities by
// unweighted BFS, ignoring link weights and direction. Returns nil when
// either endpoint is missing or no path exists within maxDepth hops.
// A negative maxDepth means DefaultPathDepth; zero forbids any hop.
// A path from an entity to itself is the single-step path.
func (e *Engine) ShortestPath(ctx context.Context, fromID, toID string, maxDepth int) ([]PathStep, error) {
	if maxDepth < 0 {
		maxDepth = DefaultPathDepth
	}

	from, err := e.store.Entity(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}
	if from == nil {
		return nil, nil
	}
	if fromID == toID {
		return []PathStep{{Entity: *from}}, nil
	}
	to, err := e.store.Entity(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}
	if to == nil {
		return nil, nil
	}

	cameFrom := map[string]pathHop{fromID: {}}

	frontier := []string{fromID}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			links, err := e.store.EntityLinks(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("shortest path: links for %s: %w", id, err)
			}
			for _, l := range links {
				neighbor := l.Other(id)
				if _, seen := cameFrom[neighbor]; seen {
					continue
				}
				cameFrom[neighbor] = pathHop{prev: id, rel: l.RelationshipType}
				if neighbor == toID {
					return e.assemblePath(ctx, fromID, toID, cameFrom)
				}
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	return nil, nil
}

// pathHop records how BFS first reached an entity.
type pathHop struct {
	prev string
	rel  RelationshipType
}

func (e *Engine) assemblePath(ctx context.Context, fromID, toID string, cameFrom map[string]pathHop) ([]PathStep, error) {
	// Walk back from the target, then reverse.
	var reversed []PathStep
	id := toID
	for {
		entity, err := e.store.Entity(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("shortest path: %w", err)
		}
		if entity == nil {
			return nil, nil
		}
		h := cameFrom[id]
		reversed = append(reversed, PathStep{Entity: *entity, Relationship: h.rel})
		if id == fromID {
			break
		}
		id = h.prev
	}

	path := make([]PathStep, len(reversed))
	for i, step := range reversed {
		path[len(reversed)-1-i] = step
	}
	return path, nil
}

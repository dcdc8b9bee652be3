package graph

import (
	"context"
	"fmt"
)

// Neighborhood is a node+edge view around a center entity.
type Neighborhood struct {
	Center Entity            `json:"center"`
	Nodes  []GraphNode       `json:"nodes"`
	Edges  []EntityLink      `json:"edges"`
	Stats  NeighborhoodStats `json:"stats"`
}

// NeighborhoodStats summarizes a neighborhood.
type NeighborhoodStats struct {
	NodeCount  int                `json:"node_count"`
	EdgeCount  int                `json:"edge_count"`
	AvgDepth   float64            `json:"avg_depth"`
	MaxDepth   int                `json:"max_depth"`
	TypeCounts map[EntityType]int `json:"type_counts"`
}

// Neighborhood traverses from entityID and keeps only edges whose endpoints
// were both discovered, deduplicated by (source, target, relationship).
// Returns nil when the center entity does not exist.
func (e *Engine) Neighborhood(ctx context.Context, entityID string, opts TraverseOptions) (*Neighborhood, error) {
	center, err := e.store.Entity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("neighborhood %s: %w", entityID, err)
	}
	if center == nil {
		return nil, nil
	}

	nodes, err := e.Traverse(ctx, entityID, opts)
	if err != nil {
		return nil, err
	}

	inSet := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		inSet[n.Entity.ID] = true
	}

	seen := make(map[string]bool)
	var edges []EntityLink
	for _, n := range nodes {
		links, err := e.store.EntityLinks(ctx, n.Entity.ID)
		if err != nil {
			return nil, fmt.Errorf("neighborhood %s: links for %s: %w", entityID, n.Entity.ID, err)
		}
		for _, l := range links {
			if !inSet[l.SourceEntityID] || !inSet[l.TargetEntityID] {
				continue // no dangling edges
			}
			key := l.SourceEntityID + "|" + l.TargetEntityID + "|" + string(l.RelationshipType)
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, l)
		}
	}

	stats := NeighborhoodStats{
		NodeCount:  len(nodes),
		EdgeCount:  len(edges),
		TypeCounts: make(map[EntityType]int),
	}
	depthSum := 0
	for _, n := range nodes {
		depthSum += n.Depth
		if n.Depth > stats.MaxDepth {
			stats.MaxDepth = n.Depth
		}
		stats.TypeCounts[n.Entity.Type]++
	}
	if len(nodes) > 0 {
		stats.AvgDepth = float64(depthSum) / float64(len(nodes))
	}

	return &Neighborhood{
		Center: *center,
		Nodes:  nodes,
		Edges:  edges,
		Stats:  stats,
	}, nil
}

package graph

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// ConnectedEntity pairs an entity with how many links touch it.
type ConnectedEntity struct {
	Entity    Entity `json:"entity"`
	LinkCount int    `json:"link_count"`
}

// RecentActivity counts links last seen within trailing windows.
type RecentActivity struct {
	LastDay   int `json:"last_day"`
	LastWeek  int `json:"last_week"`
	LastMonth int `json:"last_month"`
}

// GraphStats is a global snapshot of the knowledge graph.
type GraphStats struct {
	EntityCount         int                      `json:"entity_count"`
	LinkCount           int                      `json:"link_count"`
	ReferenceCount      int                      `json:"reference_count"`
	EntitiesByType      map[EntityType]int       `json:"entities_by_type"`
	LinksByRelationship map[RelationshipType]int `json:"links_by_relationship"`
	ReferencesByDomain  map[Domain]int           `json:"references_by_domain"`
	MostConnected       []ConnectedEntity        `json:"most_connected"`
	RecentActivity      RecentActivity           `json:"recent_activity"`
}

// Stats aggregates global counts, distributions, the ten most-connected
// entities, and recent link activity.
func (e *Engine) Stats(ctx context.Context) (*GraphStats, error) {
	entities, err := e.store.AllEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph stats: %w", err)
	}
	links, err := e.store.AllLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph stats: %w", err)
	}
	refs, err := e.store.AllReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph stats: %w", err)
	}

	stats := &GraphStats{
		EntityCount:         len(entities),
		LinkCount:           len(links),
		ReferenceCount:      len(refs),
		EntitiesByType:      make(map[EntityType]int),
		LinksByRelationship: make(map[RelationshipType]int),
		ReferencesByDomain:  make(map[Domain]int),
	}

	for _, ent := range entities {
		stats.EntitiesByType[ent.Type]++
	}
	for _, r := range refs {
		stats.ReferencesByDomain[r.Domain]++
	}

	now := time.Now()
	linkCounts := make(map[string]int)
	for _, l := range links {
		stats.LinksByRelationship[l.RelationshipType]++
		linkCounts[l.SourceEntityID]++
		linkCounts[l.TargetEntityID]++

		age := now.Sub(l.LastSeenAt)
		if age <= 24*time.Hour {
			stats.RecentActivity.LastDay++
		}
		if age <= 7*24*time.Hour {
			stats.RecentActivity.LastWeek++
		}
		if age <= 30*24*time.Hour {
			stats.RecentActivity.LastMonth++
		}
	}

	connected := make([]ConnectedEntity, 0, len(entities))
	for _, ent := range entities {
		if n := linkCounts[ent.ID]; n > 0 {
			connected = append(connected, ConnectedEntity{Entity: ent, LinkCount: n})
		}
	}
	sort.Slice(connected, func(i, j int) bool {
		if connected[i].LinkCount != connected[j].LinkCount {
			return connected[i].LinkCount > connected[j].LinkCount
		}
		return connected[i].Entity.ID < connected[j].Entity.ID
	})
	if len(connected) > 10 {
		connected = connected[:10]
	}
	stats.MostConnected = connected

	return stats, nil
}

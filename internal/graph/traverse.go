package graph

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// TraverseOptions bounds and filters a traversal. The zero value of MaxDepth
// is meaningful (visit only the start entity); use DefaultTraverseOptions
// for the standard limits.
type TraverseOptions struct {
	MaxDepth      int
	MaxNodes      int                // default 50
	MinScore      float64            // default 0.1
	IncludeTypes  []EntityType       // empty = all
	ExcludeTypes  []EntityType       // empty = none
	Relationships []RelationshipType // empty = all
	DecayDays     float64            // default: engine setting (30 unless overridden)
}

// DefaultTraverseOptions returns the standard traversal limits.
func DefaultTraverseOptions() TraverseOptions {
	return TraverseOptions{
		MaxDepth:  3,
		MaxNodes:  50,
		MinScore:  0.1,
		DecayDays: DefaultDecayDays,
	}
}

func (o TraverseOptions) maxNodes() int {
	if o.MaxNodes <= 0 {
		return 50
	}
	return o.MaxNodes
}

func (o TraverseOptions) minScore() float64 {
	if o.MinScore <= 0 {
		return 0.1
	}
	return o.MinScore
}

func (o TraverseOptions) typeAllowed(t EntityType) bool {
	for _, ex := range o.ExcludeTypes {
		if t == ex {
			return false
		}
	}
	if len(o.IncludeTypes) == 0 {
		return true
	}
	for _, in := range o.IncludeTypes {
		if t == in {
			return true
		}
	}
	return false
}

func (o TraverseOptions) relAllowed(r RelationshipType) bool {
	if len(o.Relationships) == 0 {
		return true
	}
	for _, rel := range o.Relationships {
		if r == rel {
			return true
		}
	}
	return false
}

// queueEntry is one pending BFS visit. The score is the cumulative
// structural score along the path; the temporal blend of the incoming link
// is applied at dequeue time.
type queueEntry struct {
	id       string
	depth    int
	score    float64
	lastSeen time.Time // of the incoming link; zero for the seed
	labels   []string
	rels     []string
}

// Traverse runs a weighted breadth-first expansion from startID, scoring
// each discovered entity by path weight, depth penalty, and temporal decay.
// A missing start entity yields an empty result. Results are sorted by
// score, descending.
//
// A visited set keyed by entity id makes cycles terminate. Entities rejected
// by a type filter are not marked visited, so another path may rediscover
// them; entities dropped for scoring below MinScore are final.
func (e *Engine) Traverse(ctx context.Context, startID string, opts TraverseOptions) ([]GraphNode, error) {
	start, err := e.store.Entity(ctx, startID)
	if err != nil {
		return nil, fmt.Errorf("traverse %s: %w", startID, err)
	}
	if start == nil {
		return nil, nil
	}

	now := time.Now()
	decayDays := opts.DecayDays
	if decayDays <= 0 {
		decayDays = e.decayDays
	}
	visited := make(map[string]bool)
	queue := []queueEntry{{id: startID, score: 1.0, labels: []string{start.Label}}}
	var results []GraphNode

	for len(queue) > 0 && len(results) < opts.maxNodes() {
		cur := queue[0]
		queue = queue[1:]

		if visited[cur.id] {
			continue
		}

		entity := start
		if cur.id != startID {
			entity, err = e.store.Entity(ctx, cur.id)
			if err != nil {
				return nil, fmt.Errorf("traverse %s: %w", startID, err)
			}
			if entity == nil {
				continue
			}
		}

		if !opts.typeAllowed(entity.Type) {
			continue // filtered, stays revisitable via other paths
		}
		visited[cur.id] = true

		// The enqueuer couldn't know this entity's label yet; complete the
		// path before reporting or extending it.
		if n := len(cur.labels); n > 0 && cur.labels[n-1] == "" {
			cur.labels[n-1] = entity.Label
		}

		at := cur.lastSeen
		if at.IsZero() {
			at = entity.CreatedAt
		}
		temporal := temporalDecayAt(at, decayDays, now)
		final := cur.score * temporalBlend(temporal)
		if final < opts.minScore() {
			continue
		}

		results = append(results, GraphNode{
			Entity:           *entity,
			Depth:            cur.depth,
			Score:            final,
			TemporalScore:    temporal,
			LabelPath:        cur.labels,
			RelationshipPath: cur.rels,
		})

		if cur.depth >= opts.MaxDepth {
			continue
		}

		links, err := e.store.EntityLinks(ctx, cur.id)
		if err != nil {
			return nil, fmt.Errorf("traverse %s: links for %s: %w", startID, cur.id, err)
		}
		for _, link := range links {
			if !opts.relAllowed(link.RelationshipType) {
				continue
			}
			neighbor := link.Other(cur.id)
			if neighbor == cur.id || visited[neighbor] {
				continue
			}

			weight := link.Weight
			if weight <= 0 {
				weight = defaultLinkWeight
			}
			score := cur.score * depthPenalty * weight
			decay := temporalDecayAt(link.LastSeenAt, decayDays, now)
			if score*temporalBlend(decay) < opts.minScore() {
				continue
			}

			labels := append(append([]string(nil), cur.labels...), "")
			rels := append(append([]string(nil), cur.rels...), string(link.RelationshipType))
			queue = append(queue, queueEntry{
				id:       neighbor,
				depth:    cur.depth + 1,
				score:    score,
				lastSeen: link.LastSeenAt,
				labels:   labels,
				rels:     rels,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

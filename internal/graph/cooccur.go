package graph

import (
	"context"
	"fmt"
	"sort"
)

// Cooccurrence is a (source, target) entity pair that the extraction
// pipeline has observed linked repeatedly.
type Cooccurrence struct {
	SourceEntityID string `json:"source_entity_id"`
	TargetEntityID string `json:"target_entity_id"`
	SourceLabel    string `json:"source_label"`
	TargetLabel    string `json:"target_label"`
	Count          int    `json:"count"`
}

// FrequentCooccurrences aggregates link observations by ordered
// (source, target) pair and returns pairs seen at least minOccurrences
// times, most frequent first. Counting is directional: (a, b) and (b, a)
// accumulate separately.
func (e *Engine) FrequentCooccurrences(ctx context.Context, minOccurrences int) ([]Cooccurrence, error) {
	if minOccurrences <= 0 {
		minOccurrences = 3
	}

	links, err := e.store.AllLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("cooccurrences: %w", err)
	}

	counts := make(map[[2]string]int)
	for _, l := range links {
		counts[[2]string{l.SourceEntityID, l.TargetEntityID}]++
	}

	entities, err := e.store.AllEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("cooccurrences: %w", err)
	}
	labels := make(map[string]string, len(entities))
	for _, ent := range entities {
		labels[ent.ID] = ent.Label
	}

	var results []Cooccurrence
	for pair, count := range counts {
		if count < minOccurrences {
			continue
		}
		results = append(results, Cooccurrence{
			SourceEntityID: pair[0],
			TargetEntityID: pair[1],
			SourceLabel:    labels[pair[0]],
			TargetLabel:    labels[pair[1]],
			Count:          count,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		// Stable order for equal counts.
		if results[i].SourceEntityID != results[j].SourceEntityID {
			return results[i].SourceEntityID < results[j].SourceEntityID
		}
		return results[i].TargetEntityID < results[j].TargetEntityID
	})
	return results, nil
}

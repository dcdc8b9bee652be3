package graph

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
)

// QueryOptions bounds the unified query pipeline.
type QueryOptions struct {
	MaxEntities  int     // default 20
	MaxItems     int     // default 10
	SemanticTopK int     // default 5
	DecayDays    float64 // default: engine setting (30 unless overridden)
}

func (o QueryOptions) maxEntities() int {
	if o.MaxEntities <= 0 {
		return 20
	}
	return o.MaxEntities
}

func (o QueryOptions) maxItems() int {
	if o.MaxItems <= 0 {
		return 10
	}
	return o.MaxItems
}

func (o QueryOptions) semanticTopK() int {
	if o.SemanticTopK <= 0 {
		return 5
	}
	return o.SemanticTopK
}

// RelevantItem is a domain record surfaced by the query pipeline.
type RelevantItem struct {
	Domain  Domain  `json:"domain"`
	ItemID  string  `json:"item_id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// QueryResult fuses every retrieval stage into one ranked answer.
type QueryResult struct {
	Entities      []GraphNode             `json:"entities"`
	Connections   []CrossDomainConnection `json:"connections"`
	RelevantItems []RelevantItem          `json:"relevant_items"`
	QueryContext  string                  `json:"query_context"`
}

// Stage weights and caps for the unified pipeline.
const (
	labelMatchScore    = 0.9
	semanticScoreScale = 0.8
	labelMatchLimit    = 10
	expansionSeeds     = 5
	enrichmentEntities = 15
)

// Query answers a natural-language query by fusing four retrieval stages:
// label matching, external semantic search, shallow graph expansion from the
// strongest seeds, and cross-domain enrichment. Each stage deduplicates by
// entity id, keeping the higher score. A failing semantic-search collaborator
// is logged and skipped; the pipeline always returns its partial result.
func (e *Engine) Query(ctx context.Context, query string, opts QueryOptions) (*QueryResult, error) {
	found := make(map[string]GraphNode)
	items := make(map[string]RelevantItem)

	// Stage 1: label match.
	matches, err := e.store.EntitiesByLabel(ctx, query, labelMatchLimit)
	if err != nil {
		return nil, fmt.Errorf("query %q: label match: %w", query, err)
	}
	for _, ent := range matches {
		keepBest(found, GraphNode{
			Entity:    ent,
			Depth:     0,
			Score:     labelMatchScore,
			LabelPath: []string{ent.Label},
		})
	}

	// Stage 2: semantic search. Optional; never fails the pipeline.
	if e.searcher != nil {
		if err := e.semanticStage(ctx, query, opts, found, items); err != nil {
			log.Printf("query: semantic stage skipped: %v", err)
		}
	}

	// Stage 3: shallow expansion from the strongest seeds.
	seeds := rankNodes(found)
	if len(seeds) > expansionSeeds {
		seeds = seeds[:expansionSeeds]
	}
	for _, seed := range seeds {
		nodes, err := e.Traverse(ctx, seed.Entity.ID, TraverseOptions{
			MaxDepth:  2,
			MaxNodes:  20,
			DecayDays: opts.DecayDays,
		})
		if err != nil {
			return nil, fmt.Errorf("query %q: expansion from %s: %w", query, seed.Entity.ID, err)
		}
		for _, n := range nodes {
			if n.Entity.ID == seed.Entity.ID {
				continue
			}
			n.Score *= seed.Score // rescale by how strong the seed was
			keepBest(found, n)
		}
	}

	// Stage 4: cross-domain enrichment of the top entities.
	ranked := rankNodes(found)
	top := ranked
	if len(top) > enrichmentEntities {
		top = top[:enrichmentEntities]
	}
	var connections []CrossDomainConnection
	for _, n := range top {
		conn, err := e.CrossDomainConnections(ctx, n.Entity.ID)
		if err != nil {
			return nil, fmt.Errorf("query %q: enrichment: %w", query, err)
		}
		if conn == nil || len(conn.References) == 0 {
			continue
		}
		connections = append(connections, *conn)

		if e.resolver == nil {
			continue
		}
		for _, refs := range conn.References {
			for _, ref := range refs {
				key := string(ref.Domain) + "|" + ref.ItemID
				if _, ok := items[key]; ok {
					continue
				}
				item, err := e.resolver.ResolveItem(ctx, ref.Domain, ref.ItemID)
				if err != nil {
					return nil, fmt.Errorf("query %q: resolve %s/%s: %w", query, ref.Domain, ref.ItemID, err)
				}
				if item == nil {
					continue
				}
				items[key] = RelevantItem{
					Domain:  item.Domain,
					ItemID:  item.ItemID,
					Content: item.Content,
					Score:   n.Score * ref.Confidence,
				}
			}
		}
	}

	// Final sort and truncation.
	entities := ranked
	if len(entities) > opts.maxEntities() {
		entities = entities[:opts.maxEntities()]
	}
	relevant := rankItems(items)
	if len(relevant) > opts.maxItems() {
		relevant = relevant[:opts.maxItems()]
	}

	return &QueryResult{
		Entities:      entities,
		Connections:   connections,
		RelevantItems: relevant,
		QueryContext:  summarize(query, entities, relevant),
	}, nil
}

// semanticStage runs the external semantic search under a bounded timeout
// and folds linked entities and matched items into the working sets.
func (e *Engine) semanticStage(ctx context.Context, query string, opts QueryOptions, found map[string]GraphNode, items map[string]RelevantItem) error {
	sctx, cancel := context.WithTimeout(ctx, e.searchTimeout)
	defer cancel()

	hits, err := e.searcher.Search(sctx, query, opts.semanticTopK())
	if err != nil {
		return err
	}

	for _, hit := range hits {
		key := string(hit.Domain) + "|" + hit.ItemID
		if existing, ok := items[key]; !ok || hit.Similarity > existing.Score {
			items[key] = RelevantItem{
				Domain:  hit.Domain,
				ItemID:  hit.ItemID,
				Content: hit.Content,
				Score:   hit.Similarity,
			}
		}

		linked, err := e.searcher.EntitiesForItem(sctx, hit.Domain, hit.ItemID)
		if err != nil {
			return err
		}
		for _, ent := range linked {
			keepBest(found, GraphNode{
				Entity:    ent,
				Depth:     1,
				Score:     hit.Similarity * semanticScoreScale,
				LabelPath: []string{ent.Label},
			})
		}
	}
	return nil
}

// keepBest merges a node into the set, keeping the higher score per id.
func keepBest(found map[string]GraphNode, n GraphNode) {
	if existing, ok := found[n.Entity.ID]; ok && existing.Score >= n.Score {
		return
	}
	found[n.Entity.ID] = n
}

func rankNodes(found map[string]GraphNode) []GraphNode {
	nodes := make([]GraphNode, 0, len(found))
	for _, n := range found {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Score != nodes[j].Score {
			return nodes[i].Score > nodes[j].Score
		}
		return nodes[i].Entity.ID < nodes[j].Entity.ID
	})
	return nodes
}

func rankItems(items map[string]RelevantItem) []RelevantItem {
	ranked := make([]RelevantItem, 0, len(items))
	for _, it := range items {
		ranked = append(ranked, it)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})
	return ranked
}

// summarize builds the one-line human-readable context for a query result.
func summarize(query string, entities []GraphNode, items []RelevantItem) string {
	if len(entities) == 0 && len(items) == 0 {
		return fmt.Sprintf("No knowledge graph matches for %q", query)
	}
	var labels []string
	for i, n := range entities {
		if i == 3 {
			break
		}
		labels = append(labels, n.Entity.Label)
	}
	s := fmt.Sprintf("Found %d entities and %d related items for %q", len(entities), len(items), query)
	if len(labels) > 0 {
		s += ": " + strings.Join(labels, ", ")
	}
	return s
}

package semantic

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
	"github.com/Johnsonbros/Zeke-sub009/internal/store"
)

// Searcher ranks stored memory items against a query by cosine similarity
// over their embeddings. It satisfies graph.Searcher.
type Searcher struct {
	db       *store.DB
	embedder Embedder
}

// NewSearcher creates a semantic searcher over the given store.
func NewSearcher(db *store.DB, embedder Embedder) *Searcher {
	return &Searcher{db: db, embedder: embedder}
}

// Search embeds the query and returns the topK most similar memory items.
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]graph.Hit, error) {
	if topK <= 0 {
		topK = 5
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	vectors, err := s.db.AllVectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}

	type scored struct {
		domain graph.Domain
		itemID string
		sim    float64
	}
	var candidates []scored
	for _, v := range vectors {
		if v.Model != s.embedder.Model() {
			continue // vectors from a different embedder are not comparable
		}
		sim := CosineSimilarity(queryVec, v.Embedding)
		if sim > 0 {
			candidates = append(candidates, scored{v.Domain, v.ItemID, sim})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].sim != candidates[j].sim {
			return candidates[i].sim > candidates[j].sim
		}
		return candidates[i].itemID < candidates[j].itemID
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	hits := make([]graph.Hit, 0, len(candidates))
	for _, c := range candidates {
		item, err := s.db.ResolveItem(ctx, c.domain, c.itemID)
		if err != nil {
			return nil, fmt.Errorf("resolve hit %s/%s: %w", c.domain, c.itemID, err)
		}
		if item == nil {
			continue // vector outlived its item
		}
		hits = append(hits, graph.Hit{
			Domain:     c.domain,
			ItemID:     c.itemID,
			Content:    item.Content,
			Similarity: c.sim,
		})
	}
	return hits, nil
}

// EntitiesForItem returns the entities referenced by a domain item.
func (s *Searcher) EntitiesForItem(ctx context.Context, domain graph.Domain, itemID string) ([]graph.Entity, error) {
	return s.db.EntitiesForItem(ctx, domain, itemID)
}

// EmbedMissing generates and stores embeddings for memory items that have
// none yet (or whose stored vector came from a different embedder). Returns
// the number of items embedded.
func (s *Searcher) EmbedMissing(ctx context.Context) (int, error) {
	items, err := s.db.ItemsByDomain(ctx, graph.DomainMemory)
	if err != nil {
		return 0, fmt.Errorf("list memory items: %w", err)
	}

	embedded := 0
	for _, it := range items {
		if it.Content == "" {
			continue
		}
		existing, err := s.db.GetVector(ctx, it.Domain, it.ItemID)
		if err != nil {
			return embedded, fmt.Errorf("check vector %s/%s: %w", it.Domain, it.ItemID, err)
		}
		if existing != nil && existing.Model == s.embedder.Model() {
			continue
		}

		vec, err := s.embedder.Embed(ctx, it.Content)
		if err != nil {
			log.Printf("embed item %s/%s: %v", it.Domain, it.ItemID, err)
			continue
		}
		if err := s.db.SaveVector(ctx, it.Domain, it.ItemID, vec, s.embedder.Model()); err != nil {
			return embedded, fmt.Errorf("save vector %s/%s: %w", it.Domain, it.ItemID, err)
		}
		embedded++
	}
	return embedded, nil
}

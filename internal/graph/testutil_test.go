package graph

import (
	"context"
	"strings"
	"testing"
	"time"
)

// fakeStore is an in-memory Store for engine tests.
type fakeStore struct {
	entities map[string]Entity
	links    []EntityLink
	refs     []EntityReference
}

func newFakeStore() *fakeStore {
	return &fakeStore{entities: make(map[string]Entity)}
}

func (f *fakeStore) addEntity(id string, t EntityType, label string) {
	f.entities[id] = Entity{ID: id, Type: t, Label: label, CreatedAt: time.Now()}
}

func (f *fakeStore) addLink(source, target string, rel RelationshipType, weight float64) {
	f.addLinkAt(source, target, rel, weight, time.Now())
}

func (f *fakeStore) addLinkAt(source, target string, rel RelationshipType, weight float64, at time.Time) {
	f.links = append(f.links, EntityLink{
		SourceEntityID:   source,
		TargetEntityID:   target,
		RelationshipType: rel,
		Weight:           weight,
		LastSeenAt:       at,
	})
}

func (f *fakeStore) addRef(entityID string, domain Domain, itemID string, confidence float64) {
	f.addRefAt(entityID, domain, itemID, confidence, time.Now())
}

func (f *fakeStore) addRefAt(entityID string, domain Domain, itemID string, confidence float64, at time.Time) {
	f.refs = append(f.refs, EntityReference{
		EntityID:    entityID,
		Domain:      domain,
		ItemID:      itemID,
		Confidence:  confidence,
		ExtractedAt: at,
	})
}

func (f *fakeStore) Entity(_ context.Context, id string) (*Entity, error) {
	if e, ok := f.entities[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeStore) AllEntities(_ context.Context) ([]Entity, error) {
	var out []Entity
	for _, e := range f.entities {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) EntitiesByType(_ context.Context, t EntityType) ([]Entity, error) {
	var out []Entity
	for _, e := range f.entities {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) EntityLinks(_ context.Context, id string) ([]EntityLink, error) {
	var out []EntityLink
	for _, l := range f.links {
		if l.SourceEntityID == id || l.TargetEntityID == id {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) EntityReferences(_ context.Context, id string) ([]EntityReference, error) {
	var out []EntityReference
	for _, r := range f.refs {
		if r.EntityID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) EntitiesByLabel(_ context.Context, query string, limit int) ([]Entity, error) {
	q := strings.ToLower(query)
	var out []Entity
	for _, e := range f.entities {
		if strings.Contains(strings.ToLower(e.Label), q) || strings.Contains(q, strings.ToLower(e.Label)) {
			out = append(out, e)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) AllLinks(_ context.Context) ([]EntityLink, error) {
	return f.links, nil
}

func (f *fakeStore) AllReferences(_ context.Context) ([]EntityReference, error) {
	return f.refs, nil
}

// seedAliceGraph builds the canonical fixture: Alice collaborates on
// Project Phoenix, works at Acme, and is referenced from the contact and
// memory domains.
func seedAliceGraph(t *testing.T) *fakeStore {
	t.Helper()
	f := newFakeStore()
	f.addEntity("alice", TypePerson, "Alice")
	f.addEntity("phoenix", TypeTopic, "Project Phoenix")
	f.addEntity("acme", TypeOrganization, "Acme Corp")
	f.addLink("alice", "phoenix", RelCollaboratesOn, 0.8)
	f.addLink("alice", "acme", RelWorksAt, 0.6)
	f.addRef("alice", DomainContact, "contact-1", 0.9)
	f.addRef("alice", DomainMemory, "memory-1", 0.9)
	return f
}

// fakeResolver resolves items from a fixed map keyed by domain|itemID.
type fakeResolver struct {
	items map[string]DomainItem
}

func (f *fakeResolver) ResolveItem(_ context.Context, domain Domain, itemID string) (*DomainItem, error) {
	if it, ok := f.items[string(domain)+"|"+itemID]; ok {
		return &it, nil
	}
	return nil, nil
}

// fakeSearcher returns canned hits, or fails when err is set.
type fakeSearcher struct {
	hits     []Hit
	entities map[string][]Entity // keyed by domain|itemID
	err      error
	itemErr  error
}

func (f *fakeSearcher) Search(_ context.Context, _ string, topK int) ([]Hit, error) {
	if f.err != nil {
		return nil, f.err
	}
	hits := f.hits
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (f *fakeSearcher) EntitiesForItem(_ context.Context, domain Domain, itemID string) ([]Entity, error) {
	if f.itemErr != nil {
		return nil, f.itemErr
	}
	return f.entities[string(domain)+"|"+itemID], nil
}

// Package graph is the knowledge-graph retrieval engine: weighted traversal
// with temporal-decay scoring, cross-domain bridging, shortest paths,
// co-occurrence mining, trend detection, and a unified ranked query pipeline
// over entities extracted from the user's memories, tasks, contacts,
// conversations, and locations.
//
// The package is strictly read-only with respect to the graph store. All
// persistent data is created by an external extraction pipeline; every type
// derived here (GraphNode, CrossDomainConnection, TemporalPattern, ...) is
// ephemeral and recomputed per call.
package graph

import (
	"context"
	"time"
)

// EntityType classifies an entity. Closed set, enforced by the store schema.
type EntityType string

const (
	TypePerson       EntityType = "person"
	TypePlace        EntityType = "place"
	TypeTopic        EntityType = "topic"
	TypeOrganization EntityType = "organization"
	TypeEvent        EntityType = "event"
)

// EntityTypes returns all valid entity types.
func EntityTypes() []EntityType {
	return []EntityType{TypePerson, TypePlace, TypeTopic, TypeOrganization, TypeEvent}
}

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	switch t {
	case TypePerson, TypePlace, TypeTopic, TypeOrganization, TypeEvent:
		return true
	}
	return false
}

// RelationshipType classifies a link between two entities. Closed set.
type RelationshipType string

const (
	RelKnows          RelationshipType = "knows"
	RelWorksAt        RelationshipType = "works_at"
	RelLocatedIn      RelationshipType = "located_in"
	RelCollaboratesOn RelationshipType = "collaborates_on"
	RelAttended       RelationshipType = "attended"
	RelDiscussed      RelationshipType = "discussed"
	RelRelatedTo      RelationshipType = "related_to"
)

// RelationshipTypes returns all valid relationship types.
func RelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelKnows, RelWorksAt, RelLocatedIn, RelCollaboratesOn,
		RelAttended, RelDiscussed, RelRelatedTo,
	}
}

// Valid reports whether r is a known relationship type.
func (r RelationshipType) Valid() bool {
	switch r {
	case RelKnows, RelWorksAt, RelLocatedIn, RelCollaboratesOn,
		RelAttended, RelDiscussed, RelRelatedTo:
		return true
	}
	return false
}

// Domain identifies a subsystem whose items can reference entities.
type Domain string

const (
	DomainMemory       Domain = "memory"
	DomainTask         Domain = "task"
	DomainContact      Domain = "contact"
	DomainConversation Domain = "conversation"
	DomainLocation     Domain = "location"
	DomainGrocery      Domain = "grocery"
	DomainEvent        Domain = "event"
)

// Domains returns all valid domains. Connection strength normalizes domain
// diversity against the size of this set.
func Domains() []Domain {
	return []Domain{
		DomainMemory, DomainTask, DomainContact, DomainConversation,
		DomainLocation, DomainGrocery, DomainEvent,
	}
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	switch d {
	case DomainMemory, DomainTask, DomainContact, DomainConversation,
		DomainLocation, DomainGrocery, DomainEvent:
		return true
	}
	return false
}

// Entity is a canonicalized concept tracked across domains.
type Entity struct {
	ID          string     `json:"id"`
	Type        EntityType `json:"type"`
	Label       string     `json:"label"`
	CanonicalID string     `json:"canonical_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// EntityLink is a weighted, typed edge between two entities. Links are
// traversed symmetrically regardless of direction; direction is preserved
// for reporting. Weight is in [0,1].
type EntityLink struct {
	SourceEntityID   string           `json:"source_entity_id"`
	TargetEntityID   string           `json:"target_entity_id"`
	RelationshipType RelationshipType `json:"relationship_type"`
	Weight           float64          `json:"weight"`
	LastSeenAt       time.Time        `json:"last_seen_at"`
}

// Other returns the endpoint of the link opposite to entityID.
func (l EntityLink) Other(entityID string) string {
	if l.SourceEntityID == entityID {
		return l.TargetEntityID
	}
	return l.SourceEntityID
}

// EntityReference points from an entity to a concrete domain item.
// Recurring mentions produce multiple references per entity over time.
type EntityReference struct {
	EntityID    string    `json:"entity_id"`
	Domain      Domain    `json:"domain"`
	ItemID      string    `json:"item_id"`
	Confidence  float64   `json:"confidence"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// DomainItem is a record resolved from one of the domain stores.
type DomainItem struct {
	Domain    Domain    `json:"domain"`
	ItemID    string    `json:"item_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// GraphNode is a traversal result: an entity plus how it was reached and how
// relevant it scored. Derived per call, never persisted.
type GraphNode struct {
	Entity           Entity   `json:"entity"`
	Depth            int      `json:"depth"`
	Score            float64  `json:"score"`
	TemporalScore    float64  `json:"temporal_score"`
	LabelPath        []string `json:"label_path,omitempty"`
	RelationshipPath []string `json:"relationship_path,omitempty"`
}

// Hit is one semantic-search result from the external collaborator.
type Hit struct {
	Domain     Domain  `json:"domain"`
	ItemID     string  `json:"item_id"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// Store provides read-only access to the persistent graph. Lookups for
// absent rows return (nil, nil) — absence is a normal outcome, not an error.
// Implementations must support concurrent readers.
type Store interface {
	Entity(ctx context.Context, id string) (*Entity, error)
	AllEntities(ctx context.Context) ([]Entity, error)
	EntitiesByType(ctx context.Context, t EntityType) ([]Entity, error)
	// EntityLinks returns every link touching id, in either direction.
	EntityLinks(ctx context.Context, id string) ([]EntityLink, error)
	EntityReferences(ctx context.Context, id string) ([]EntityReference, error)
	EntitiesByLabel(ctx context.Context, query string, limit int) ([]Entity, error)
	// AllLinks returns every link observation row, repeats included.
	AllLinks(ctx context.Context) ([]EntityLink, error)
	AllReferences(ctx context.Context) ([]EntityReference, error)
}

// ItemResolver resolves a reference into the concrete record of its domain
// store. Returns (nil, nil) when the record no longer exists.
type ItemResolver interface {
	ResolveItem(ctx context.Context, domain Domain, itemID string) (*DomainItem, error)
}

// Searcher is the semantic-search collaborator used by the unified query
// pipeline. Failures are tolerated: the pipeline skips the stage and
// continues with partial results.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]Hit, error)
	EntitiesForItem(ctx context.Context, domain Domain, itemID string) ([]Entity, error)
}

// Engine runs graph retrieval against injected collaborators. All methods
// are safe for concurrent use: the engine holds no mutable state and the
// store is read-only.
type Engine struct {
	store    Store
	resolver ItemResolver
	searcher Searcher

	// searchTimeout bounds the external semantic-search call.
	searchTimeout time.Duration

	// decayDays is the temporal-decay window used when an options struct
	// leaves DecayDays unset.
	decayDays float64
}

// New creates an Engine over the given store.
func New(store Store) *Engine {
	return &Engine{
		store:         store,
		searchTimeout: 5 * time.Second,
		decayDays:     DefaultDecayDays,
	}
}

// SetResolver configures the per-domain record resolver.
func (e *Engine) SetResolver(r ItemResolver) {
	e.resolver = r
}

// SetSearcher configures the semantic-search collaborator.
func (e *Engine) SetSearcher(s Searcher) {
	e.searcher = s
}

// SetSearchTimeout overrides the bound on the semantic-search call.
func (e *Engine) SetSearchTimeout(d time.Duration) {
	if d > 0 {
		e.searchTimeout = d
	}
}

// SetDecayDays overrides the default temporal-decay window. Per-call
// options that set DecayDays explicitly still win.
func (e *Engine) SetDecayDays(days float64) {
	if days > 0 {
		e.decayDays = days
	}
}

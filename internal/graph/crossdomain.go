package graph

import (
	"context"
	"fmt"
	"sort"
)

// CrossDomainConnection describes how strongly one entity bridges separate
// data domains. Strength combines domain diversity with extraction
// confidence: (distinctDomains / totalDomains) * avgConfidence, and is 0 for
// entities seen in fewer than two domains.
type CrossDomainConnection struct {
	Entity             Entity                       `json:"entity"`
	References         map[Domain][]EntityReference `json:"references"`
	ConnectionStrength float64                      `json:"connection_strength"`
}

// DomainCount returns the number of distinct domains referencing the entity.
func (c CrossDomainConnection) DomainCount() int {
	return len(c.References)
}

// CrossDomainConnections groups all references of an entity by domain and
// computes its bridging strength. Returns nil when the entity is missing.
func (e *Engine) CrossDomainConnections(ctx context.Context, entityID string) (*CrossDomainConnection, error) {
	entity, err := e.store.Entity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("cross-domain %s: %w", entityID, err)
	}
	if entity == nil {
		return nil, nil
	}

	refs, err := e.store.EntityReferences(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("cross-domain %s: references: %w", entityID, err)
	}

	conn := buildConnection(*entity, refs)
	return &conn, nil
}

// BridgingEntities scans all entities and returns those referenced from at
// least minDomains distinct domains, strongest first. minDomains below 2
// defaults to 2 — a single-domain entity bridges nothing.
func (e *Engine) BridgingEntities(ctx context.Context, minDomains int) ([]CrossDomainConnection, error) {
	if minDomains < 2 {
		minDomains = 2
	}

	entities, err := e.store.AllEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("bridging entities: %w", err)
	}

	var bridges []CrossDomainConnection
	for _, entity := range entities {
		refs, err := e.store.EntityReferences(ctx, entity.ID)
		if err != nil {
			return nil, fmt.Errorf("bridging entities: references for %s: %w", entity.ID, err)
		}
		conn := buildConnection(entity, refs)
		if conn.DomainCount() >= minDomains {
			bridges = append(bridges, conn)
		}
	}

	sort.Slice(bridges, func(i, j int) bool {
		return bridges[i].ConnectionStrength > bridges[j].ConnectionStrength
	})
	return bridges, nil
}

func buildConnection(entity Entity, refs []EntityReference) CrossDomainConnection {
	byDomain := make(map[Domain][]EntityReference)
	confidenceSum := 0.0
	for _, r := range refs {
		byDomain[r.Domain] = append(byDomain[r.Domain], r)
		confidenceSum += r.Confidence
	}

	strength := 0.0
	if len(byDomain) >= 2 && len(refs) > 0 {
		avgConfidence := confidenceSum / float64(len(refs))
		strength = float64(len(byDomain)) / float64(len(Domains())) * avgConfidence
	}

	return CrossDomainConnection{
		Entity:             entity,
		References:         byDomain,
		ConnectionStrength: strength,
	}
}

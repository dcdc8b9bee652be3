package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
)

// PutReference appends one entity-to-item reference. Recurring mentions
// produce one row each.
func (db *DB) PutReference(ctx context.Context, r graph.EntityReference) error {
	if !r.Domain.Valid() {
		return fmt.Errorf("put reference: invalid domain %q", r.Domain)
	}
	if r.ExtractedAt.IsZero() {
		r.ExtractedAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO entity_references (entity_id, domain, item_id, confidence, extracted_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.EntityID, string(r.Domain), r.ItemID, r.Confidence, r.ExtractedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("put reference %s -> %s/%s: %w", r.EntityID, r.Domain, r.ItemID, err)
	}
	return nil
}

// EntityReferences returns all references of one entity, newest first.
func (db *DB) EntityReferences(ctx context.Context, id string) ([]graph.EntityReference, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT entity_id, domain, item_id, confidence, extracted_at
		FROM entity_references WHERE entity_id = ?
		ORDER BY extracted_at DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("entity references %s: %w", id, err)
	}
	defer rows.Close()
	return scanReferences(rows)
}

// AllReferences returns every reference row.
func (db *DB) AllReferences(ctx context.Context) ([]graph.EntityReference, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT entity_id, domain, item_id, confidence, extracted_at
		FROM entity_references
	`)
	if err != nil {
		return nil, fmt.Errorf("all references: %w", err)
	}
	defer rows.Close()
	return scanReferences(rows)
}

// EntitiesForItem returns the entities referencing one domain item. Used by
// the semantic searcher to map matched items back into the graph.
func (db *DB) EntitiesForItem(ctx context.Context, domain graph.Domain, itemID string) ([]graph.Entity, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT e.id, e.entity_type, e.label, e.canonical_id, e.created_at
		FROM entities e
		JOIN entity_references r ON r.entity_id = e.id
		WHERE r.domain = ? AND r.item_id = ?
		GROUP BY e.id
	`, string(domain), itemID)
	if err != nil {
		return nil, fmt.Errorf("entities for item %s/%s: %w", domain, itemID, err)
	}
	defer rows.Close()
	return scanEntities(rows)
}

func scanReferences(rows *sql.Rows) ([]graph.EntityReference, error) {
	var refs []graph.EntityReference
	for rows.Next() {
		var r graph.EntityReference
		var domain string
		var extracted int64
		if err := rows.Scan(&r.EntityID, &domain, &r.ItemID, &r.Confidence, &extracted); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		r.Domain = graph.Domain(domain)
		r.ExtractedAt = time.UnixMilli(extracted)
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

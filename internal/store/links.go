package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
)

// PutLink appends one link observation. Repeated observations of the same
// pair produce separate rows; co-occurrence mining counts them.
func (db *DB) PutLink(ctx context.Context, l graph.EntityLink) error {
	if !l.RelationshipType.Valid() {
		return fmt.Errorf("put link: invalid relationship %q", l.RelationshipType)
	}
	if l.LastSeenAt.IsZero() {
		l.LastSeenAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO entity_links (source_entity_id, target_entity_id, relationship_type, weight, last_seen_at)
		VALUES (?, ?, ?, ?, ?)
	`, l.SourceEntityID, l.TargetEntityID, string(l.RelationshipType), l.Weight, l.LastSeenAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("put link %s->%s: %w", l.SourceEntityID, l.TargetEntityID, err)
	}
	return nil
}

// EntityLinks returns every link touching the entity, in either direction.
func (db *DB) EntityLinks(ctx context.Context, id string) ([]graph.EntityLink, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT source_entity_id, target_entity_id, relationship_type, weight, last_seen_at
		FROM entity_links
		WHERE source_entity_id = ? OR target_entity_id = ?
		ORDER BY last_seen_at DESC
	`, id, id)
	if err != nil {
		return nil, fmt.Errorf("entity links %s: %w", id, err)
	}
	defer rows.Close()
	return scanLinks(rows)
}

// AllLinks returns every link observation row.
func (db *DB) AllLinks(ctx context.Context) ([]graph.EntityLink, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT source_entity_id, target_entity_id, relationship_type, weight, last_seen_at
		FROM entity_links
	`)
	if err != nil {
		return nil, fmt.Errorf("all links: %w", err)
	}
	defer rows.Close()
	return scanLinks(rows)
}

func scanLinks(rows *sql.Rows) ([]graph.EntityLink, error) {
	var links []graph.EntityLink
	for rows.Next() {
		var l graph.EntityLink
		var rel string
		var lastSeen int64
		if err := rows.Scan(&l.SourceEntityID, &l.TargetEntityID, &rel, &l.Weight, &lastSeen); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		l.RelationshipType = graph.RelationshipType(rel)
		l.LastSeenAt = time.UnixMilli(lastSeen)
		links = append(links, l)
	}
	return links, rows.Err()
}

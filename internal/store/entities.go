package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
	"github.com/google/uuid"
)

// PutEntity inserts or replaces an entity. A blank ID is assigned a fresh
// UUID; a zero CreatedAt defaults to now. Write surface for the extraction
// pipeline and the seed command — the retrieval engine never calls it.
func (db *DB) PutEntity(ctx context.Context, e *graph.Entity) error {
	if !e.Type.Valid() {
		return fmt.Errorf("put entity: invalid type %q", e.Type)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO entities (id, entity_type, label, canonical_id, created_at)
		VALUES (?, ?, ?, NULLIF(?, ''), ?)
		ON CONFLICT(id) DO UPDATE SET entity_type = excluded.entity_type,
			label = excluded.label, canonical_id = excluded.canonical_id
	`, e.ID, string(e.Type), e.Label, e.CanonicalID, e.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("put entity %s: %w", e.ID, err)
	}
	return nil
}

// Entity returns an entity by id, or nil if not found.
func (db *DB) Entity(ctx context.Context, id string) (*graph.Entity, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, entity_type, label, canonical_id, created_at
		FROM entities WHERE id = ?
	`, id)

	e, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entity %s: %w", id, err)
	}
	return e, nil
}

// AllEntities returns every entity, ordered by label.
func (db *DB) AllEntities(ctx context.Context) ([]graph.Entity, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, entity_type, label, canonical_id, created_at
		FROM entities ORDER BY label
	`)
	if err != nil {
		return nil, fmt.Errorf("all entities: %w", err)
	}
	defer rows.Close()
	return scanEntities(rows)
}

// EntitiesByType returns all entities of one type, ordered by label.
func (db *DB) EntitiesByType(ctx context.Context, t graph.EntityType) ([]graph.Entity, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, entity_type, label, canonical_id, created_at
		FROM entities WHERE entity_type = ? ORDER BY label
	`, string(t))
	if err != nil {
		return nil, fmt.Errorf("entities by type %s: %w", t, err)
	}
	defer rows.Close()
	return scanEntities(rows)
}

// EntitiesByLabel returns entities whose label contains the query,
// case-insensitively, up to limit.
func (db *DB) EntitiesByLabel(ctx context.Context, query string, limit int) ([]graph.Entity, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, entity_type, label, canonical_id, created_at
		FROM entities
		WHERE label LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY length(label), label
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("entities by label %q: %w", query, err)
	}
	defer rows.Close()
	return scanEntities(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*graph.Entity, error) {
	var e graph.Entity
	var entityType string
	var canonical sql.NullString
	var createdAt int64
	if err := row.Scan(&e.ID, &entityType, &e.Label, &canonical, &createdAt); err != nil {
		return nil, err
	}
	e.Type = graph.EntityType(entityType)
	e.CanonicalID = canonical.String
	e.CreatedAt = time.UnixMilli(createdAt)
	return &e, nil
}

func scanEntities(rows *sql.Rows) ([]graph.Entity, error) {
	var entities []graph.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		entities = append(entities, *e)
	}
	return entities, rows.Err()
}

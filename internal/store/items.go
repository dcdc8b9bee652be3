package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
	"github.com/google/uuid"
)

// PutItem inserts or replaces a domain item record. A blank ItemID is
// assigned a fresh UUID.
func (db *DB) PutItem(ctx context.Context, it *graph.DomainItem) error {
	if !it.Domain.Valid() {
		return fmt.Errorf("put item: invalid domain %q", it.Domain)
	}
	if it.ItemID == "" {
		it.ItemID = uuid.NewString()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO domain_items (domain, item_id, content, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(domain, item_id) DO UPDATE SET content = excluded.content
	`, string(it.Domain), it.ItemID, it.Content, it.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("put item %s/%s: %w", it.Domain, it.ItemID, err)
	}
	return nil
}

// ResolveItem returns one domain record, or nil if not found.
func (db *DB) ResolveItem(ctx context.Context, domain graph.Domain, itemID string) (*graph.DomainItem, error) {
	var it graph.DomainItem
	var d string
	var createdAt int64
	err := db.QueryRowContext(ctx, `
		SELECT domain, item_id, content, created_at
		FROM domain_items WHERE domain = ? AND item_id = ?
	`, string(domain), itemID).Scan(&d, &it.ItemID, &it.Content, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve item %s/%s: %w", domain, itemID, err)
	}
	it.Domain = graph.Domain(d)
	it.CreatedAt = time.UnixMilli(createdAt)
	return &it, nil
}

// ItemsByDomain returns all records of one domain, oldest first.
func (db *DB) ItemsByDomain(ctx context.Context, domain graph.Domain) ([]graph.DomainItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT domain, item_id, content, created_at
		FROM domain_items WHERE domain = ?
		ORDER BY created_at
	`, string(domain))
	if err != nil {
		return nil, fmt.Errorf("items by domain %s: %w", domain, err)
	}
	defer rows.Close()

	var items []graph.DomainItem
	for rows.Next() {
		var it graph.DomainItem
		var d string
		var createdAt int64
		if err := rows.Scan(&d, &it.ItemID, &it.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Domain = graph.Domain(d)
		it.CreatedAt = time.UnixMilli(createdAt)
		items = append(items, it)
	}
	return items, rows.Err()
}

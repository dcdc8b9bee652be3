package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
)

// VectorRecord holds an embedding for a domain item.
type VectorRecord struct {
	Domain     graph.Domain
	ItemID     string
	Embedding  []float64
	Model      string
	Dimensions int
	CreatedAt  int64
}

// encodeEmbedding converts a []float64 to a binary BLOB (8 bytes per float64).
func encodeEmbedding(vec []float64) []byte {
	buf := make([]byte, len(vec)*8)
	for i, v := range vec {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// decodeEmbedding converts a binary BLOB back to []float64.
func decodeEmbedding(buf []byte) []float64 {
	n := len(buf) / 8
	vec := make([]float64, n)
	for i := 0; i < n; i++ {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return vec
}

// SaveVector stores or replaces the embedding for a domain item.
func (db *DB) SaveVector(ctx context.Context, domain graph.Domain, itemID string, embedding []float64, model string) error {
	now := time.Now().UnixMilli()
	blob := encodeEmbedding(embedding)

	_, err := db.ExecContext(ctx, `
		INSERT INTO item_vectors (domain, item_id, embedding, model, dimensions, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain, item_id) DO UPDATE SET
			embedding = excluded.embedding, model = excluded.model,
			dimensions = excluded.dimensions, created_at = excluded.created_at
	`, string(domain), itemID, blob, model, len(embedding), now)
	if err != nil {
		return fmt.Errorf("save vector %s/%s: %w", domain, itemID, err)
	}
	return nil
}

// GetVector returns the embedding for a domain item, or nil if not found.
func (db *DB) GetVector(ctx context.Context, domain graph.Domain, itemID string) (*VectorRecord, error) {
	var v VectorRecord
	var d string
	var blob []byte

	err := db.QueryRowContext(ctx, `
		SELECT domain, item_id, embedding, model, dimensions, created_at
		FROM item_vectors WHERE domain = ? AND item_id = ?
	`, string(domain), itemID).Scan(&d, &v.ItemID, &blob, &v.Model, &v.Dimensions, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vector %s/%s: %w", domain, itemID, err)
	}
	v.Domain = graph.Domain(d)
	v.Embedding = decodeEmbedding(blob)
	return &v, nil
}

// AllVectors returns all stored vector records.
func (db *DB) AllVectors(ctx context.Context) ([]VectorRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT domain, item_id, embedding, model, dimensions, created_at
		FROM item_vectors
	`)
	if err != nil {
		return nil, fmt.Errorf("all vectors: %w", err)
	}
	defer rows.Close()

	var records []VectorRecord
	for rows.Next() {
		var v VectorRecord
		var d string
		var blob []byte
		if err := rows.Scan(&d, &v.ItemID, &blob, &v.Model, &v.Dimensions, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vector: %w", err)
		}
		v.Domain = graph.Domain(d)
		v.Embedding = decodeEmbedding(blob)
		records = append(records, v)
	}
	return records, rows.Err()
}

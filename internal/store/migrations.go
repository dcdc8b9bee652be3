package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "entities: canonicalized concepts extracted across domains",
		SQL: `
CREATE TABLE entities (
    id           TEXT PRIMARY KEY,
    entity_type  TEXT NOT NULL CHECK (entity_type IN ('person', 'place', 'topic', 'organization', 'event')),
    label        TEXT NOT NULL CHECK (label <> ''),
    canonical_id TEXT,
    created_at   INTEGER NOT NULL
);

CREATE INDEX idx_entities_type  ON entities(entity_type);
CREATE INDEX idx_entities_label ON entities(label COLLATE NOCASE);
`,
	},
	{
		Version:     2,
		Description: "entity_links: weighted typed edges, one row per observation",
		SQL: `
CREATE TABLE entity_links (
    id                INTEGER PRIMARY KEY,
    source_entity_id  TEXT NOT NULL,
    target_entity_id  TEXT NOT NULL CHECK (target_entity_id <> source_entity_id),
    relationship_type TEXT NOT NULL CHECK (relationship_type IN
        ('knows', 'works_at', 'located_in', 'collaborates_on', 'attended', 'discussed', 'related_to')),
    weight            REAL NOT NULL DEFAULT 0.5 CHECK (weight >= 0 AND weight <= 1),
    last_seen_at      INTEGER NOT NULL,

    FOREIGN KEY (source_entity_id) REFERENCES entities(id) ON DELETE CASCADE,
    FOREIGN KEY (target_entity_id) REFERENCES entities(id) ON DELETE CASCADE
);

CREATE INDEX idx_links_source ON entity_links(source_entity_id);
CREATE INDEX idx_links_target ON entity_links(target_entity_id);
CREATE INDEX idx_links_seen   ON entity_links(last_seen_at DESC);
`,
	},
	{
		Version:     3,
		Description: "entity_references: entity-to-domain-item pointers with confidence",
		SQL: `
CREATE TABLE entity_references (
    id           INTEGER PRIMARY KEY,
    entity_id    TEXT NOT NULL,
    domain       TEXT NOT NULL CHECK (domain IN
        ('memory', 'task', 'contact', 'conversation', 'location', 'grocery', 'event')),
    item_id      TEXT NOT NULL,
    confidence   REAL NOT NULL DEFAULT 1.0 CHECK (confidence >= 0 AND confidence <= 1),
    extracted_at INTEGER NOT NULL,

    FOREIGN KEY (entity_id) REFERENCES entities(id) ON DELETE CASCADE
);

CREATE INDEX idx_refs_entity    ON entity_references(entity_id);
CREATE INDEX idx_refs_item      ON entity_references(domain, item_id);
CREATE INDEX idx_refs_extracted ON entity_references(extracted_at DESC);
`,
	},
	{
		Version:     4,
		Description: "domain_items: the records entity references resolve to",
		SQL: `
CREATE TABLE domain_items (
    domain     TEXT NOT NULL CHECK (domain IN
        ('memory', 'task', 'contact', 'conversation', 'location', 'grocery', 'event')),
    item_id    TEXT NOT NULL,
    content    TEXT NOT NULL,
    created_at INTEGER NOT NULL,

    PRIMARY KEY (domain, item_id)
);
`,
	},
	{
		Version:     5,
		Description: "item_vectors: embedding vectors for semantic search over domain items",
		SQL: `
CREATE TABLE item_vectors (
    domain     TEXT NOT NULL,
    item_id    TEXT NOT NULL,
    embedding  BLOB NOT NULL,
    model      TEXT NOT NULL,
    dimensions INTEGER NOT NULL,
    created_at INTEGER NOT NULL,

    PRIMARY KEY (domain, item_id),
    FOREIGN KEY (domain, item_id) REFERENCES domain_items(domain, item_id) ON DELETE CASCADE
);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}

// ABOUTME: SQLite database schema for the journaling timeline and embeddings
// ABOUTME: Creates all tables, join tables, and indexes for local storage
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Eras table (user-defined named periods)
CREATE TABLE IF NOT EXISTS eras (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    start_date DATETIME NOT NULL,
    end_date DATETIME
);

-- Events table (journaled life events)
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT DEFAULT '',
    category TEXT DEFAULT '',
    start_date DATETIME NOT NULL,
    end_date DATETIME,
    era_id TEXT REFERENCES eras(id) ON DELETE SET NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Entity tables with explicit many-to-many joins (no JSON blobs)
CREATE TABLE IF NOT EXISTS tags (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS event_tags (
    event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (event_id, tag_id)
);

CREATE TABLE IF NOT EXISTS people (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS event_people (
    event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
    position INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (event_id, person_id)
);

CREATE TABLE IF NOT EXISTS locations (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS event_locations (
    event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    location_id TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
    position INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (event_id, location_id)
);

-- Embeddings table: one current vector per (event, provider)
CREATE TABLE IF NOT EXISTS embeddings (
    event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    provider TEXT NOT NULL,
    model TEXT NOT NULL,
    dimension INTEGER NOT NULL,
    content_hash TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (event_id, provider)
);

-- Cross-references: canonical pair ordering, one row per (pair, type)
CREATE TABLE IF NOT EXISTS cross_references (
    reference_id TEXT PRIMARY KEY,
    event_id_1 TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    event_id_2 TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    relationship_type TEXT NOT NULL,
    confidence_score REAL NOT NULL,
    details TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (event_id_1, event_id_2, relationship_type),
    CHECK (event_id_1 < event_id_2)
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_date);
CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
CREATE INDEX IF NOT EXISTS idx_events_era ON events(era_id);
CREATE INDEX IF NOT EXISTS idx_embeddings_provider ON embeddings(provider);
CREATE INDEX IF NOT EXISTS idx_crossrefs_event1 ON cross_references(event_id_1);
CREATE INDEX IF NOT EXISTS idx_crossrefs_event2 ON cross_references(event_id_2);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1

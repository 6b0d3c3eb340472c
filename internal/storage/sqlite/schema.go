// ABOUTME: SQLite database schema for the vector index and embedding cache
// ABOUTME: Creates all tables and indexes for durable local storage
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Vector index entries (one row per indexed chunk)
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    document TEXT NOT NULL,
    page INTEGER NOT NULL,
    chunk_index INTEGER NOT NULL,
    text TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Content-addressed embedding cache (append-only, never pruned)
CREATE TABLE IF NOT EXISTS embedding_cache (
    content_hash TEXT PRIMARY KEY,
    vector BLOB NOT NULL,
    dimension INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_entries_document ON entries(document);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1

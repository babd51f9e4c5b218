package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the export job table and its indexes.
const Schema = `
CREATE TABLE IF NOT EXISTS export_jobs (
	id TEXT PRIMARY KEY,
	format TEXT NOT NULL,
	mode TEXT NOT NULL,
	path TEXT,
	record_count INTEGER NOT NULL DEFAULT 0,
	bytes INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	error TEXT,
	started_at TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_export_jobs_started_at ON export_jobs(started_at);
CREATE INDEX IF NOT EXISTS idx_export_jobs_format ON export_jobs(format);
CREATE INDEX IF NOT EXISTS idx_export_jobs_status ON export_jobs(status);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);
`

// InsertSchemaVersion records the schema version on first run.
const InsertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`

// GetSchemaVersion reads the stored schema version.
const GetSchemaVersion = `SELECT version FROM schema_version LIMIT 1`

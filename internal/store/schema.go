// Package store keeps extraction results for the current session, with a
// best-effort SQLite mirror so results survive a restart when a database
// path is configured.
package store

// schema contains the SQLite table definitions for stored results.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,  -- static or dynamic.
	filename   TEXT,
	payload    TEXT NOT NULL,  -- Full result JSON.
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at);
`

package db

import (
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Open initialises the SQLite database and ensures the schema exists.
func Open(path string, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// One writer at a time; the snapshot cache is tiny.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			log.Warn("pragma failed", "pragma", p, "error", err)
		}
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// ensureSchema creates the tables the site needs.
func ensureSchema(db *sql.DB) error {
	const schema = `
	-- Last good response per upstream content URL
	CREATE TABLE IF NOT EXISTS upstream_snapshots (
		url        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		fetched_at INTEGER NOT NULL   -- Unix seconds
	);
	`

	_, err := db.Exec(schema)
	return err
}

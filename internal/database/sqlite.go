package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/formcraft/formcraft-backend/internal/config"
)

// snapshotSchema holds one serialized snapshot per store slot.
const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	slot     TEXT PRIMARY KEY,
	version  INTEGER NOT NULL,
	payload  BLOB NOT NULL,
	saved_at TIMESTAMP NOT NULL
);`

// NewSnapshotDB opens (creating if needed) the device-local sqlite
// database that backs the store snapshot slots.
func NewSnapshotDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.SnapshotDBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.SnapshotDBPath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	// Single writer; sqlite handles its own file locking.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, stmt := range pragmas {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}

	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot schema: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping snapshot db: %w", err)
	}

	log.Info().Str("path", cfg.SnapshotDBPath).Msg("Snapshot database ready")
	return db, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SnapshotSink receives serialized store state after every mutation.
// Implementations are fire-and-forget: a failed write is the sink's
// problem to log, the in-memory store stays authoritative.
type SnapshotSink interface {
	Persist(slot string, version int, payload []byte)
}

// SnapshotRepository reads and writes store snapshots in the device-local
// sqlite database. One row per named slot, last write wins.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save upserts the snapshot payload for a slot.
func (r *SnapshotRepository) Save(ctx context.Context, slot string, version int, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (slot, version, payload, saved_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			saved_at = excluded.saved_at`,
		slot, version, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", slot, err)
	}
	return nil
}

// Load retrieves the snapshot payload for a slot. The boolean is false
// when no snapshot has ever been written for the slot.
func (r *SnapshotRepository) Load(ctx context.Context, slot string) ([]byte, int, bool, error) {
	var payload []byte
	var version int
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, version FROM snapshots WHERE slot = ?`, slot,
	).Scan(&payload, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("load snapshot %q: %w", slot, err)
	}
	return payload, version, true, nil
}

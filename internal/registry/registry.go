// Package registry keeps a small SQLite log of every device the tool
// has ever seen, so listings can show when a serial was last around.
// It records observations only; the actual selection is never stored.
package registry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite sighting database.
type DB struct {
	db   *sql.DB
	path string
}

// Sighting is the accumulated record for one device serial.
type Sighting struct {
	Serial    string
	Kind      string
	LastState string
	FirstSeen time.Time
	LastSeen  time.Time
	TimesSeen int
}

// Open opens (or creates) the registry database.
func Open(configDir string) (*DB, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dbPath := filepath.Join(configDir, "registry.db")
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	r := &DB{db: sqlDB, path: dbPath}
	if err := r.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the database.
func (r *DB) Close() error {
	return r.db.Close()
}

// Path returns the path to the registry database file.
func (r *DB) Path() string {
	return r.path
}

func (r *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sightings (
		serial TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		last_state TEXT NOT NULL,
		first_seen DATETIME NOT NULL,
		last_seen DATETIME NOT NULL,
		times_seen INTEGER NOT NULL DEFAULT 0
	);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// RecordSighting upserts one observation of a device.
func (r *DB) RecordSighting(serial, kind, state string) error {
	now := time.Now()
	_, err := r.db.Exec(
		`INSERT INTO sightings (serial, kind, last_state, first_seen, last_seen, times_seen)
		 VALUES (?, ?, ?, ?, ?, 1)
		 ON CONFLICT(serial) DO UPDATE SET
		   kind = excluded.kind,
		   last_state = excluded.last_state,
		   last_seen = excluded.last_seen,
		   times_seen = times_seen + 1`,
		serial, kind, state, now, now,
	)
	if err != nil {
		return fmt.Errorf("record sighting: %w", err)
	}
	return nil
}

// Sightings returns all recorded devices, most recently seen first.
func (r *DB) Sightings() ([]Sighting, error) {
	rows, err := r.db.Query(
		`SELECT serial, kind, last_state, first_seen, last_seen, times_seen
		 FROM sightings
		 ORDER BY last_seen DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("get sightings: %w", err)
	}
	defer rows.Close()

	var sightings []Sighting
	for rows.Next() {
		var s Sighting
		if err := rows.Scan(&s.Serial, &s.Kind, &s.LastState, &s.FirstSeen, &s.LastSeen, &s.TimesSeen); err != nil {
			return nil, fmt.Errorf("scan sighting: %w", err)
		}
		sightings = append(sightings, s)
	}
	return sightings, rows.Err()
}

// LastSeen returns when a serial was last observed, if ever.
func (r *DB) LastSeen(serial string) (time.Time, bool, error) {
	var t time.Time
	err := r.db.QueryRow(
		`SELECT last_seen FROM sightings WHERE serial = ?`, serial,
	).Scan(&t)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("last seen: %w", err)
	}
	return t, true, nil
}

// Package store persists snapshots of a unit index in SQLite so that the
// families and units a catalog produced can be inspected and compared
// without reloading it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/unitary/internal/index"
)

// ErrNoSnapshot is returned when a snapshot lookup finds nothing.
var ErrNoSnapshot = errors.New("no snapshot")

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id         TEXT PRIMARY KEY,
    source     TEXT NOT NULL DEFAULT '',
    families   INTEGER NOT NULL,
    units      INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS families (
    snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    name        TEXT NOT NULL,
    dimension   TEXT NOT NULL,
    standard    TEXT NOT NULL,
    PRIMARY KEY (snapshot_id, name)
);

CREATE TABLE IF NOT EXISTS units (
    snapshot_id   TEXT NOT NULL,
    family        TEXT NOT NULL,
    position      INTEGER NOT NULL,
    id            TEXT NOT NULL,
    name          TEXT NOT NULL,
    display       TEXT NOT NULL,
    textual       TEXT NOT NULL,
    scale_factor  REAL NOT NULL,
    scale_offset  REAL NOT NULL DEFAULT 0,
    system        TEXT NOT NULL,
    is_generated  INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (snapshot_id, family, id),
    FOREIGN KEY (snapshot_id, family) REFERENCES families(snapshot_id, name) ON DELETE CASCADE
);
`

// Snapshot describes one saved index.
type Snapshot struct {
	ID        string
	Source    string
	Families  int
	Units     int
	CreatedAt time.Time
}

// FamilyRow is a family as stored in a snapshot.
type FamilyRow struct {
	Name      string
	Dimension string
	Standard  string
}

// UnitRow is a unit as stored in a snapshot.
type UnitRow struct {
	ID        string
	Name      string
	Display   string
	Textual   string
	Factor    float64
	Offset    float64
	System    string
	Generated bool
}

// SQLiteStore stores index snapshots in a local SQLite database in WAL mode.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode and
// busy timeout, and creates the schema tables if they do not exist.
func Open(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite supports a single writer; one connection keeps the PRAGMAs
	// below in effect for every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot writes every family of idx, with all of its units including
// generated ones, as a new snapshot in a single transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, idx *index.Index, source string) (Snapshot, error) {
	snap := Snapshot{ID: uuid.NewString(), Source: source}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	families := idx.Families()
	for _, f := range families {
		snap.Units += f.Len()
	}
	snap.Families = len(families)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, families, units) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Source, snap.Families, snap.Units); err != nil {
		return Snapshot{}, fmt.Errorf("store: insert snapshot: %w", err)
	}

	famStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO families (snapshot_id, name, dimension, standard) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("store: prepare family insert: %w", err)
	}
	defer famStmt.Close()

	unitStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO units (snapshot_id, family, position, id, name, display, textual, scale_factor, scale_offset, system, is_generated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("store: prepare unit insert: %w", err)
	}
	defer unitStmt.Close()

	for _, f := range families {
		if _, err := famStmt.ExecContext(ctx, snap.ID, f.Name(), f.Dimension().Format(true, false), f.StandardUnit().ID()); err != nil {
			return Snapshot{}, fmt.Errorf("store: insert family %q: %w", f.Name(), err)
		}
		for i, u := range f.Units() {
			sc := u.Scale()
			if _, err := unitStmt.ExecContext(ctx, snap.ID, f.Name(), i, u.ID(), u.Name(),
				u.DisplayAbbreviation(), u.TextualAbbreviation(), sc.Factor, sc.Offset,
				string(u.System()), u.IsGenerated()); err != nil {
				return Snapshot{}, fmt.Errorf("store: insert unit %s.%s: %w", f.Name(), u.ID(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("store: commit snapshot: %w", err)
	}

	return s.Snapshot(ctx, snap.ID)
}

// Snapshot returns the snapshot with the given id, or ErrNoSnapshot.
func (s *SQLiteStore) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	const q = `SELECT id, source, families, units, created_at FROM snapshots WHERE id = ?`
	return s.scanSnapshot(s.db.QueryRowContext(ctx, q, id))
}

// LatestSnapshot returns the most recently saved snapshot, or ErrNoSnapshot.
func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (Snapshot, error) {
	const q = `SELECT id, source, families, units, created_at FROM snapshots
		ORDER BY created_at DESC, rowid DESC LIMIT 1`
	return s.scanSnapshot(s.db.QueryRowContext(ctx, q))
}

// ListSnapshots returns every snapshot, newest first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	const q = `SELECT id, source, families, units, created_at FROM snapshots
		ORDER BY created_at DESC, rowid DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: query snapshots: %w", err)
	}
	defer rows.Close()

	var result []Snapshot
	for rows.Next() {
		snap, err := s.scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate snapshots: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanSnapshot(row scanner) (Snapshot, error) {
	var (
		snap Snapshot
		ts   string
	)
	err := row.Scan(&snap.ID, &snap.Source, &snap.Families, &snap.Units, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("store: scan snapshot: %w", err)
	}
	createdAt, err := parseTimestamp(ts)
	if err != nil {
		return Snapshot{}, fmt.Errorf("store: parse snapshot timestamp: %w", err)
	}
	snap.CreatedAt = createdAt
	return snap, nil
}

// ListFamilies returns the families of a snapshot ordered by name.
func (s *SQLiteStore) ListFamilies(ctx context.Context, snapshotID string) ([]FamilyRow, error) {
	const q = `SELECT name, dimension, standard FROM families WHERE snapshot_id = ? ORDER BY name`
	rows, err := s.db.QueryContext(ctx, q, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("store: query families: %w", err)
	}
	defer rows.Close()

	var result []FamilyRow
	for rows.Next() {
		var f FamilyRow
		if err := rows.Scan(&f.Name, &f.Dimension, &f.Standard); err != nil {
			return nil, fmt.Errorf("store: scan family: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate families: %w", err)
	}
	return result, nil
}

// ListUnits returns the units of one family of a snapshot in registration
// order.
func (s *SQLiteStore) ListUnits(ctx context.Context, snapshotID, family string) ([]UnitRow, error) {
	const q = `SELECT id, name, display, textual, scale_factor, scale_offset, system, is_generated
		FROM units WHERE snapshot_id = ? AND family = ? ORDER BY position`
	rows, err := s.db.QueryContext(ctx, q, snapshotID, family)
	if err != nil {
		return nil, fmt.Errorf("store: query units: %w", err)
	}
	defer rows.Close()

	var result []UnitRow
	for rows.Next() {
		var u UnitRow
		if err := rows.Scan(&u.ID, &u.Name, &u.Display, &u.Textual, &u.Factor, &u.Offset, &u.System, &u.Generated); err != nil {
			return nil, fmt.Errorf("store: scan unit: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate units: %w", err)
	}
	return result, nil
}

// DeleteSnapshot removes a snapshot with its families and units.
func (s *SQLiteStore) DeleteSnapshot(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete snapshot %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSnapshot, id)
	}
	return nil
}

// timestampFormats lists the formats SQLite drivers may produce for
// CURRENT_TIMESTAMP. modernc.org/sqlite typically returns RFC 3339, while
// canonical SQLite returns the space-separated DateTime format.
var timestampFormats = []string{
	time.RFC3339,
	time.DateTime,
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// Package sqlite persists index snapshots in a single SQLite file.
// Saves are atomic: the snapshot is written to a sibling temp file and
// renamed over the target, so a crash mid-save never corrupts the
// previous snapshot.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quarry-labs/quarry/internal/adapters/driven/snapshot/sqlite/migrations"
	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/core/ports/driven"
)

// formatVersion is bumped whenever the snapshot schema changes in a
// way old readers cannot handle.
const formatVersion = 1

// Store persists snapshots at a fixed file path.
type Store struct {
	path string
}

var _ driven.SnapshotStore = (*Store)(nil)

// NewStore creates a store writing to path. If path is empty, defaults
// to ~/.quarry/data/index.db. The file itself is only created on Save.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".quarry", "data", "index.db")
	}
	return &Store{path: path}, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes snap to a temp database and renames it over the target.
func (s *Store) Save(ctx context.Context, snap *domain.IndexSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale temp snapshot: %w", err)
	}

	db, err := openDB(tmp)
	if err != nil {
		return err
	}

	if err := migrate(db, migrations.FS); err != nil {
		db.Close()
		return fmt.Errorf("running migrations: %w", err)
	}

	if err := writeSnapshot(ctx, db, snap); err != nil {
		db.Close()
		os.Remove(tmp)
		return err
	}

	if err := db.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot.
func (s *Store) Load(ctx context.Context) (*domain.IndexSnapshot, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("checking snapshot file: %w", err)
	}

	db, err := openDB(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap, err := readSnapshot(ctx, db)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotCorrupt) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	return snap, nil
}

func openDB(path string) (*sql.DB, error) {
	// WAL mode for better concurrency, same settings as the metadata
	// stores this layout is modelled on.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	return db, nil
}

func writeSnapshot(ctx context.Context, db *sql.DB, snap *domain.IndexSnapshot) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	meta := map[string]string{
		"format_version": strconv.Itoa(formatVersion),
		"fitted":         strconv.FormatBool(snap.Fitted),
		"dimension":      strconv.Itoa(len(snap.Vocabulary)),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("saving meta %s: %w", key, err)
		}
	}

	vocabStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO vocabulary (term, position, idf) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing vocabulary insert: %w", err)
	}
	defer vocabStmt.Close()

	for term, position := range snap.Vocabulary {
		if _, err := vocabStmt.ExecContext(ctx, term, position, snap.IDF[term]); err != nil {
			return fmt.Errorf("saving vocabulary term: %w", err)
		}
	}

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (row_id, chunk_id, document_id, position, content, vector)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer entryStmt.Close()

	for row, entry := range snap.Entries {
		blob := float64SliceToBytes(entry.Vector)
		if _, err := entryStmt.ExecContext(ctx, row, entry.Chunk.ID, entry.Chunk.DocumentID,
			entry.Chunk.Position, entry.Chunk.Content, blob); err != nil {
			return fmt.Errorf("saving entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func readSnapshot(ctx context.Context, db *sql.DB) (*domain.IndexSnapshot, error) {
	meta, err := readMeta(ctx, db)
	if err != nil {
		return nil, err
	}

	version, err := strconv.Atoi(meta["format_version"])
	if err != nil || version != formatVersion {
		return nil, fmt.Errorf("unsupported format version %q", meta["format_version"])
	}
	fitted, err := strconv.ParseBool(meta["fitted"])
	if err != nil {
		return nil, fmt.Errorf("parsing fitted flag: %w", err)
	}
	dimension, err := strconv.Atoi(meta["dimension"])
	if err != nil {
		return nil, fmt.Errorf("parsing dimension: %w", err)
	}

	snap := &domain.IndexSnapshot{
		Vocabulary: make(map[string]int),
		IDF:        make(map[string]float64),
		Fitted:     fitted,
	}

	rows, err := db.QueryContext(ctx, `SELECT term, position, idf FROM vocabulary`)
	if err != nil {
		return nil, fmt.Errorf("querying vocabulary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var term string
		var position int
		var idf float64
		if err := rows.Scan(&term, &position, &idf); err != nil {
			return nil, fmt.Errorf("scanning vocabulary term: %w", err)
		}
		snap.Vocabulary[term] = position
		snap.IDF[term] = idf
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading vocabulary: %w", err)
	}
	if len(snap.Vocabulary) != dimension {
		return nil, fmt.Errorf("vocabulary size %d does not match recorded dimension %d",
			len(snap.Vocabulary), dimension)
	}

	entryRows, err := db.QueryContext(ctx, `
		SELECT chunk_id, document_id, position, content, vector
		FROM entries ORDER BY row_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var entry domain.IndexEntry
		var blob []byte
		if err := entryRows.Scan(&entry.Chunk.ID, &entry.Chunk.DocumentID,
			&entry.Chunk.Position, &entry.Chunk.Content, &blob); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if len(blob)%8 != 0 {
			return nil, fmt.Errorf("vector blob length %d is not a multiple of 8", len(blob))
		}
		entry.Vector = bytesToFloat64Slice(blob)
		if len(entry.Vector) != dimension {
			return nil, fmt.Errorf("vector length %d does not match dimension %d",
				len(entry.Vector), dimension)
		}
		snap.Entries = append(snap.Entries, entry)
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}

	return snap, nil
}

func readMeta(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("querying meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning meta: %w", err)
		}
		meta[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading meta: %w", err)
	}
	for _, key := range []string{"format_version", "fitted", "dimension"} {
		if _, ok := meta[key]; !ok {
			return nil, fmt.Errorf("missing meta key %q", key)
		}
	}
	return meta, nil
}

func migrate(db *sql.DB, fsys embed.FS) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float64SliceToBytes converts a []float64 to a byte slice for storage.
func float64SliceToBytes(floats []float64) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*8)
	for i, f := range floats {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

// bytesToFloat64Slice converts a byte slice back to []float64.
func bytesToFloat64Slice(data []byte) []float64 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float64, len(data)/8)
	for i := range floats {
		floats[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return floats
}

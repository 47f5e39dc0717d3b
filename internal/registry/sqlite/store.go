package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/arbortabs/arbor/internal/registry"
	_ "modernc.org/sqlite"
)

// Store implements registry.Store using SQLite.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// New creates a new SQLite-backed registry store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// NewInMemory creates a new in-memory SQLite store (useful for testing).
func NewInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tree_nodes (
			node_id TEXT PRIMARY KEY,
			label TEXT,
			collapsed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tree_nodes_created ON tree_nodes(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Put inserts or replaces the record for a node.
func (s *Store) Put(ctx context.Context, rec registry.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return registry.ErrStoreClosed
	}
	if rec.NodeID == "" {
		return registry.ErrInvalidID
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tree_nodes (node_id, label, collapsed, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.NodeID, rec.Label, boolToInt(rec.Collapsed), rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to put node record: %w", err)
	}

	return nil
}

// Get retrieves the record for a node ID.
func (s *Store) Get(ctx context.Context, nodeID string) (registry.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return registry.Record{}, registry.ErrStoreClosed
	}
	if nodeID == "" {
		return registry.Record{}, registry.ErrInvalidID
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT node_id, label, collapsed, created_at FROM tree_nodes WHERE node_id = ?
	`, nodeID)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return registry.Record{}, registry.ErrNotFound
	}
	if err != nil {
		return registry.Record{}, fmt.Errorf("failed to get node record: %w", err)
	}

	return rec, nil
}

// List retrieves all records ordered by creation time.
func (s *Store) List(ctx context.Context) ([]registry.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, registry.ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT node_id, label, collapsed, created_at FROM tree_nodes
		ORDER BY created_at, node_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list node records: %w", err)
	}
	defer rows.Close()

	var recs []registry.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan node record: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// SetCollapsed updates the collapsed flag for a node.
func (s *Store) SetCollapsed(ctx context.Context, nodeID string, collapsed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return registry.ErrStoreClosed
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tree_nodes SET collapsed = ? WHERE node_id = ?
	`, boolToInt(collapsed), nodeID)
	if err != nil {
		return fmt.Errorf("failed to update node record: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return registry.ErrNotFound
	}

	return nil
}

// Delete removes the record for a node ID.
func (s *Store) Delete(ctx context.Context, nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return registry.ErrStoreClosed
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM tree_nodes WHERE node_id = ?", nodeID)
	if err != nil {
		return fmt.Errorf("failed to delete node record: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return registry.ErrNotFound
	}

	return nil
}

// Clear removes all records.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return registry.ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, "DELETE FROM tree_nodes")
	if err != nil {
		return fmt.Errorf("failed to clear node records: %w", err)
	}

	return nil
}

// Close closes the store and releases resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (registry.Record, error) {
	var rec registry.Record
	var label sql.NullString
	var collapsed int
	var createdAt string

	if err := row.Scan(&rec.NodeID, &label, &collapsed, &createdAt); err != nil {
		return rec, err
	}

	rec.Label = label.String
	rec.Collapsed = collapsed != 0
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}

	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

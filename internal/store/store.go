package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store is the transactional storage collaborator for the lifecycle core.
// It exposes parametrized statements against the named record stores plus the
// schema introspection used to copy records between them.
type Store struct {
	db *sqlx.DB

	mu      sync.RWMutex
	columns map[string][]string
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, columns: make(map[string][]string)}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// BeginTxx opens one atomic unit of work. Every multi-step transition runs
// inside exactly one of these; the caller must Commit or Rollback.
func (s *Store) BeginTxx(ctx context.Context) (*sqlx.Tx, error) {
	return s.db.BeginTxx(ctx, nil)
}

// StoreColumns returns the column names of a record store in ordinal order.
// Results are cached; stores may evolve independently between deploys, not at
// runtime.
func (s *Store) StoreColumns(ctx context.Context, storeName string) ([]string, error) {
	s.mu.RLock()
	cols, ok := s.columns[storeName]
	s.mu.RUnlock()
	if ok {
		return cols, nil
	}

	err := s.db.SelectContext(ctx, &cols, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position`, storeName)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect columns of %s: %w", storeName, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("store %s has no columns (missing table?)", storeName)
	}

	s.mu.Lock()
	s.columns[storeName] = cols
	s.mu.Unlock()
	return cols, nil
}

// IntersectColumns returns the columns present in both lists, in the order of
// the first. Deterministic so copies between stores always use the same
// column list.
func IntersectColumns(src, dst []string) []string {
	dstSet := make(map[string]struct{}, len(dst))
	for _, c := range dst {
		dstSet[c] = struct{}{}
	}

	common := make([]string, 0, len(src))
	for _, c := range src {
		if _, ok := dstSet[c]; ok {
			common = append(common, c)
		}
	}
	return common
}

// CommonColumns resolves the copyable column set between two stores.
func (s *Store) CommonColumns(ctx context.Context, src, dst string) ([]string, error) {
	srcCols, err := s.StoreColumns(ctx, src)
	if err != nil {
		return nil, err
	}
	dstCols, err := s.StoreColumns(ctx, dst)
	if err != nil {
		return nil, err
	}
	return IntersectColumns(srcCols, dstCols), nil
}

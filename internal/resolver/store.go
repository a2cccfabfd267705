package resolver

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

// AcquireTimeout bounds how long a single store call may wait on the pool
// and on the query itself (SPEC_FULL.md §5 — database/sql has no separate
// pool-acquire timeout knob, so this is enforced via context per call).
const AcquireTimeout = 5 * time.Minute

// Store is the relational-store contract from spec.md §6: two statements
// against crawlerdb.t_channel_contents_map.
type Store interface {
	// SelectSeedID returns the seed_id for seedHost. The bool is false
	// (with a nil error) when no row matches.
	SelectSeedID(ctx context.Context, seedHost string) (string, bool, error)
	// InsertIgnore inserts a new row for seedHost if one doesn't already
	// exist; a race with a concurrent insert for the same seedHost is
	// expected and silently ignored by the store.
	InsertIgnore(ctx context.Context, seedHost string) error
}

// PoolConfig mirrors the connection-pool budget in spec.md §5.
type PoolConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// DefaultPoolConfig returns the budget named in spec.md §5: min 0 / max 10
// connections, 10 minute idle timeout, 30 minute max lifetime.
func DefaultPoolConfig(dsn string) PoolConfig {
	return PoolConfig{
		DSN:             dsn,
		MaxOpenConns:    10,
		MaxIdleConns:    0,
		ConnMaxIdleTime: 10 * time.Minute,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// SQLStore is a MySQL-backed Store.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens a MySQL connection pool per cfg.
func OpenSQLStore(cfg PoolConfig) (*SQLStore, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return &SQLStore{db: db}, nil
}

// Close releases the pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

const (
	selectSeedIDQuery = `SELECT seed_id FROM crawlerdb.t_channel_contents_map WHERE media_url = ?`
	insertIgnoreQuery = `INSERT IGNORE INTO crawlerdb.t_channel_contents_map
(seed_id, site_name, media_url, media_type_no)
VALUES
(?, '', ?, '0')`
)

// SelectSeedID runs the lookup statement.
func (s *SQLStore) SelectSeedID(ctx context.Context, seedHost string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, AcquireTimeout)
	defer cancel()

	var seedID string
	err := s.db.QueryRowContext(ctx, selectSeedIDQuery, seedHost).Scan(&seedID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &DatabaseError{Op: "select", Err: err}
	}
	return seedID, true, nil
}

// InsertIgnore issues the insert-on-miss statement, row shape matching
// t_channel_contents_map's required columns: site_name defaults to '' and
// media_type_no to '0', same as the original. The id is generated
// client-side with google/uuid rather than relying on a server-side
// uuid() builtin, so the same code runs against any MySQL-compatible
// backend regardless of which UUID functions it ships — convergence
// under a concurrent insert still comes from the store's unique
// constraint on media_url, not from which side minted the id (see
// DESIGN.md).
func (s *SQLStore) InsertIgnore(ctx context.Context, seedHost string) error {
	ctx, cancel := context.WithTimeout(ctx, AcquireTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, insertIgnoreQuery, uuid.NewString(), seedHost)
	if err != nil {
		return &DatabaseError{Op: "insert_ignore", Err: err}
	}
	return nil
}

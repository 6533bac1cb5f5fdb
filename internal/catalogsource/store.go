package catalogsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"plan-engine/internal/catalog"
)

const (
	defaultSQLitePath = "catalog.db"
	createTable       = `CREATE TABLE IF NOT EXISTS catalog_documents (
		name TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		payload TEXT NOT NULL
	)`
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// ErrNotFound is returned when no document is stored under a name.
var ErrNotFound = errors.New("catalog document not found")

// Store keeps named catalog documents in a catalog_documents table. SQLite and
// Postgres share the schema.
type Store struct {
	db     *sql.DB
	driver Driver
}

// OpenStore connects to a SQLite file or Postgres DSN and ensures the table
// exists.
func OpenStore(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var sqlDriver string
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
		sqlDriver = "sqlite"
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("PLAN_CATALOG_POSTGRES_DSN required for postgres source")
		}
		sqlDriver = "pgx"
	default:
		return nil, fmt.Errorf("catalog store: unsupported driver %q", driver)
	}

	openMu.Lock()
	db, err := sqlOpen(sqlDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create catalog_documents table: %w", err)
	}
	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// bind rewrites ? placeholders for Postgres.
func (s *Store) bind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Document returns the payload stored under name.
func (s *Store) Document(ctx context.Context, name string) ([]byte, catalog.Format, error) {
	var format string
	var payload []byte
	err := s.db.QueryRowContext(ctx, s.bind(`SELECT format, payload FROM catalog_documents WHERE name = ?`), name).
		Scan(&format, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, "", fmt.Errorf("select catalog document: %w", err)
	}
	f, err := catalog.ParseFormat(format)
	if err != nil {
		return nil, "", err
	}
	return payload, f, nil
}

// Publish stores payload under name after checking that it builds. An
// existing document with the same name is replaced.
func (s *Store) Publish(ctx context.Context, name string, format catalog.Format, payload []byte) (*catalog.Catalog, error) {
	if name == "" {
		name = defaultName
	}
	c, err := catalog.Parse(payload, format)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx, s.bind(`INSERT INTO catalog_documents (name, format, payload) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET format = excluded.format, payload = excluded.payload`),
		name, string(format), string(payload))
	if err != nil {
		return nil, fmt.Errorf("publish catalog %q: %w", name, err)
	}
	return c, nil
}

// Names lists stored document names.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM catalog_documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select catalog names: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func fetchSQLite(ctx context.Context, path, name string) ([]byte, catalog.Format, error) {
	return fetchStored(ctx, DriverSQLite, path, name)
}

func fetchPostgres(ctx context.Context, dsn, name string) ([]byte, catalog.Format, error) {
	return fetchStored(ctx, DriverPostgres, dsn, name)
}

func fetchStored(ctx context.Context, driver Driver, dsn, name string) ([]byte, catalog.Format, error) {
	s, err := OpenStore(ctx, driver, dsn)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = s.Close() }()
	return s.Document(ctx, name)
}

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}

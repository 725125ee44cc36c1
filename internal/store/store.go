// Package store implements the relational product store on database/sql.
//
// The backing driver is chosen from the DSN scheme:
//
//	sqlite://inventory.db   modernc.org/sqlite (default)
//	memory://               stoolap, in-memory
//	file:///var/lib/inv     stoolap, on-disk
//	mysql://user:pw@...     go-sql-driver/mysql
//
// A bare path with no scheme is treated as a sqlite file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/stoolap/stoolap/pkg/driver"
	_ "modernc.org/sqlite"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectStoolap
	dialectMySQL
)

// SQL is the database/sql-backed implementation of core.Store.
type SQL struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the database named by dsn and verifies the connection.
func Open(dsn string) (*SQL, error) {
	driver, source, d, err := resolveDriver(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if d == dialectSQLite {
		// sqlite allows a single writer; serialize access through one
		// connection so concurrent requests queue instead of failing
		db.SetMaxOpenConns(1)
	}

	return &SQL{db: db, dialect: d}, nil
}

func resolveDriver(dsn string) (driver, source string, d dialect, err error) {
	scheme, rest, found := strings.Cut(dsn, "://")
	if !found {
		return "sqlite", dsn, dialectSQLite, nil
	}

	switch scheme {
	case "sqlite":
		return "sqlite", rest, dialectSQLite, nil
	case "memory", "file":
		// stoolap consumes the full scheme-qualified DSN
		return "stoolap", dsn, dialectStoolap, nil
	case "mysql":
		return "mysql", rest, dialectMySQL, nil
	default:
		return "", "", 0, fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

// Ping verifies the database connection is alive.
func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *SQL) Close() error {
	return s.db.Close()
}

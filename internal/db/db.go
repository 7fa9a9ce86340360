package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Statements are executed one at a time; the MySQL driver rejects
// multi-statement Exec calls unless the DSN opts in.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
    id            VARCHAR(64) PRIMARY KEY,
    position      INTEGER NOT NULL,
    email         VARCHAR(255) NOT NULL,
    creation_date VARCHAR(32) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS profiles (
    id          VARCHAR(64) PRIMARY KEY,
    position    INTEGER NOT NULL,
    account_id  VARCHAR(64) NOT NULL,
    country     VARCHAR(64) NOT NULL,
    marketplace VARCHAR(128) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
    id         VARCHAR(64) PRIMARY KEY,
    position   INTEGER NOT NULL,
    profile_id VARCHAR(64) NOT NULL,
    clicks     BIGINT NOT NULL,
    cost       DOUBLE PRECISION NOT NULL,
    date       VARCHAR(32) NOT NULL
)`,
}

// Store reads and loads the account hierarchy over database/sql.
type Store struct {
	db     *sql.DB
	driver string
}

// Open opens or creates the database and initializes the schema.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return &Store{db: db, driver: driver}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

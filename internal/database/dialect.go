package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect is what the document store needs to know about a SQL engine
type Dialect interface {
	// Name is used in logs, backups and as the migrations subdirectory
	Name() string
	DriverName() string
	DSN(config DialectConfig) string

	// RewriteQuery turns ? placeholders into the engine's own syntax
	RewriteQuery(query string) string
	ConfigureConnection(db *sql.DB) error

	MigrationsSubdir() string
	CreateMigrationsTableQuery() string

	// UpsertDocumentQuery takes (collection, id, data) as ? placeholders
	UpsertDocumentQuery() string
}

// DialectConfig holds the connection target: Path for SQLite, URL for the servers
type DialectConfig struct {
	Path string
	URL  string
}

// pool sizes a connection pool
type pool struct {
	maxOpen, maxIdle int
	maxIdleTime      time.Duration
}

// engine is a Dialect described by data
type engine struct {
	name       string
	driver     string
	useURL     bool
	numbered   bool
	pool       pool
	pragmas    []string
	migrations string
	upsert     string
}

func (e *engine) Name() string       { return e.name }
func (e *engine) DriverName() string { return e.driver }

func (e *engine) DSN(config DialectConfig) string {
	if e.useURL {
		return config.URL
	}
	return config.Path
}

func (e *engine) RewriteQuery(query string) string {
	if !e.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func (e *engine) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(e.pool.maxOpen)
	db.SetMaxIdleConns(e.pool.maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	if e.pool.maxIdleTime > 0 {
		db.SetConnMaxIdleTime(e.pool.maxIdleTime)
	}
	for _, pragma := range e.pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) MigrationsSubdir() string           { return e.name }
func (e *engine) CreateMigrationsTableQuery() string { return e.migrations }
func (e *engine) UpsertDocumentQuery() string        { return e.upsert }

// NewSQLiteDialect describes SQLite. It allows a single writer, so the pool holds one
// connection to avoid SQLITE_BUSY.
func NewSQLiteDialect() Dialect {
	return &engine{
		name:    "sqlite",
		driver:  "sqlite3",
		pool:    pool{maxOpen: 1, maxIdle: 1},
		pragmas: []string{"PRAGMA journal_mode=WAL;", "PRAGMA busy_timeout=5000;"},
		migrations: `CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		upsert: `INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
			ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
	}
}

// NewPostgresDialect describes PostgreSQL ($n placeholders)
func NewPostgresDialect() Dialect {
	return &engine{
		name:     "postgres",
		driver:   "postgres",
		useURL:   true,
		numbered: true,
		pool:     pool{maxOpen: 25, maxIdle: 5, maxIdleTime: time.Minute},
		migrations: `CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		upsert: `INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
			ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = CURRENT_TIMESTAMP`,
	}
}

// NewMySQLDialect describes MySQL
func NewMySQLDialect() Dialect {
	return &engine{
		name:   "mysql",
		driver: "mysql",
		useURL: true,
		pool:   pool{maxOpen: 25, maxIdle: 5, maxIdleTime: time.Minute},
		migrations: `CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		)`,
		upsert: "INSERT INTO documents (collection, id, data) VALUES (?, ?, ?) " +
			"ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = CURRENT_TIMESTAMP(6)",
	}
}

package database

import (
	"strings"
	"testing"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		dbType  string
		want    string
		wantErr bool
	}{
		{dbType: "", want: "sqlite"},
		{dbType: "sqlite3", want: "sqlite"},
		{dbType: "PostgreSQL", want: "postgres"},
		{dbType: "mysql", want: "mysql"},
		{dbType: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			dialect, err := DialectFor(tt.dbType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DialectFor(%q) error = %v, wantErr %v", tt.dbType, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if dialect.Name() != tt.want {
				t.Errorf("DialectFor(%q) = %s, want %s", tt.dbType, dialect.Name(), tt.want)
			}
			if dialect.MigrationsSubdir() != tt.want {
				t.Errorf("MigrationsSubdir() = %s, want %s", dialect.MigrationsSubdir(), tt.want)
			}
		})
	}
}

func TestDriverNames(t *testing.T) {
	if got := NewSQLiteDialect().DriverName(); got != "sqlite3" {
		t.Errorf("sqlite DriverName() = %v", got)
	}
	if got := NewPostgresDialect().DriverName(); got != "postgres" {
		t.Errorf("postgres DriverName() = %v", got)
	}
	if got := NewMySQLDialect().DriverName(); got != "mysql" {
		t.Errorf("mysql DriverName() = %v", got)
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT data FROM documents WHERE collection = ? AND id = ?",
			expected: "SELECT data FROM documents WHERE collection = ? AND id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "DELETE FROM documents WHERE collection = ?",
			expected: "DELETE FROM documents WHERE collection = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "SELECT data FROM documents WHERE collection = ? AND id = ?",
			expected: "SELECT data FROM documents WHERE collection = $1 AND id = $2",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE documents SET data = ? WHERE collection = ? AND id = ?",
			expected: "UPDATE documents SET data = ? WHERE collection = ? AND id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestUpsertDocumentQueryPlaceholders(t *testing.T) {
	for _, dialect := range []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()} {
		t.Run(dialect.Name(), func(t *testing.T) {
			query := dialect.RewriteQuery(dialect.UpsertDocumentQuery())
			if dialect.Name() == "postgres" {
				if !strings.Contains(query, "$3") || strings.Contains(query, "?") {
					t.Errorf("postgres upsert not rewritten: %s", query)
				}
				return
			}
			if strings.Count(query, "?") != 3 {
				t.Errorf("expected 3 placeholders in %s", query)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	config := DialectConfig{Path: "/tmp/bb.db", URL: "postgres://localhost/bb"}
	if got := NewSQLiteDialect().DSN(config); got != config.Path {
		t.Errorf("sqlite DSN() = %q, want path", got)
	}
	if got := NewPostgresDialect().DSN(config); got != config.URL {
		t.Errorf("postgres DSN() = %q, want URL", got)
	}
	if got := NewMySQLDialect().DSN(config); got != config.URL {
		t.Errorf("mysql DSN() = %q, want URL", got)
	}
}

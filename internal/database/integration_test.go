package database

import (
	"context"
	"path/filepath"
	"testing"
)

const migrationsDir = "../../migrations"

// TestDatabaseIntegration tests the SQLite lifecycle with the shipped migrations
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Open("sqlite", DialectConfig{Path: filepath.Join(t.TempDir(), "integration.db")})
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(migrationsDir); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	// Running twice must be a no-op
	if err := db.RunMigrations(migrationsDir); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}

	ctx := context.Background()
	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", "documents").Scan(&name)
	if err != nil {
		t.Fatalf("documents table not found: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 recorded migration, got %d", count)
	}
}

// TestDatabaseTransactions tests WithTx commit and rollback
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Open("sqlite", DialectConfig{Path: filepath.Join(t.TempDir(), "transactions.db")})
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	if err := db.RunMigrations(migrationsDir); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	upsert := db.Dialect.UpsertDocumentQuery()

	err = db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx, upsert, "Events", "e1", `{"title":"Picnic"}`)
		return err
	})
	if err != nil {
		t.Fatalf("Committed transaction failed: %v", err)
	}

	errRollback := context.Canceled
	err = db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, upsert, "Events", "e2", `{"title":"Concert"}`); err != nil {
			return err
		}
		return errRollback
	})
	if err != errRollback {
		t.Fatalf("expected rollback error, got %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE collection = ?", "Events").Scan(&count); err != nil {
		t.Fatalf("Failed to count documents: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 document after rollback, got %d", count)
	}
}

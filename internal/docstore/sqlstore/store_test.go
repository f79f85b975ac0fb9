package sqlstore

import (
	"path/filepath"
	"testing"

	"bytebabies/internal/database"
	"bytebabies/internal/docstore"
	"bytebabies/internal/docstore/storetest"
)

func TestSQLiteStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	storetest.Run(t, func(t *testing.T) docstore.Store {
		db, err := database.Open("sqlite", database.DialectConfig{Path: filepath.Join(t.TempDir(), "docs.db")})
		if err != nil {
			t.Fatalf("Failed to initialize database: %v", err)
		}
		if err := db.RunMigrations("../../../migrations"); err != nil {
			db.Close()
			t.Fatalf("Failed to run migrations: %v", err)
		}
		store := New(db)
		t.Cleanup(func() { store.Close() })
		return store
	})
}

func TestDecodeKeepsIntegers(t *testing.T) {
	fields, err := decode(`{"age":3,"name":"Ava"}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := fields.Int("age"); got != 3 {
		t.Errorf("age = %d, want 3", got)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := decode("not json"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

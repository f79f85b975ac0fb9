// Package storage opens the configured document store backend.
package storage

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bytebabies/internal/config"
	"bytebabies/internal/database"
	"bytebabies/internal/docstore"
	"bytebabies/internal/docstore/mongostore"
	"bytebabies/internal/docstore/sqlstore"
)

// Backend is an open document store and the name of the engine behind it
type Backend struct {
	docstore.Store
	Name string
}

// Open connects to cfg.DatabaseType (memory, sqlite, postgres, mysql or mongo).
// SQL backends are migrated before they are returned.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	dbType := strings.ToLower(cfg.DatabaseType)
	switch dbType {
	case "memory":
		log.Println("Warning: using in-memory store, data is lost on restart")
		return &Backend{Store: docstore.NewMemoryStore(), Name: dbType}, nil

	case "mongo", "mongodb":
		store, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: store, Name: "mongo"}, nil
	}

	db, err := database.Open(dbType, database.DialectConfig{Path: cfg.DatabasePath, URL: cfg.DatabaseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store := sqlstore.New(db)
	return &Backend{Store: store, Name: db.Dialect.Name()}, nil
}

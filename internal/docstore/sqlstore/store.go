// Package sqlstore keeps documents as JSON rows in the relational documents table, so the
// sqlite, postgres and mysql dialects can all serve as the document backend.
package sqlstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"bytebabies/internal/database"
	"bytebabies/internal/docstore"
)

// Store implements docstore.Store on top of a migrated database
type Store struct {
	db *database.DB
}

// New wraps an open, migrated database
func New(db *database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	fields, err := getFields(ctx, s.db, collection, id)
	if err != nil {
		return docstore.Document{}, err
	}
	return docstore.Document{ID: id, Fields: fields}, nil
}

func getFields(ctx context.Context, q database.DBTX, collection, id string) (docstore.Fields, error) {
	var data string
	err := q.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	return decode(data)
}

func (s *Store) Where(ctx context.Context, collection, field string, value interface{}) ([]docstore.Document, error) {
	if field == "" {
		return nil, docstore.ErrInvalidField
	}
	docs, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	// Filtering happens after decoding so equality follows docstore.Equal on every dialect
	matched := docs[:0]
	for _, doc := range docs {
		if v, ok := doc.Fields[field]; ok && docstore.Equal(v, value) {
			matched = append(matched, doc)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}
	return matched, nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, data FROM documents WHERE collection = ? ORDER BY id",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		fields, err := decode(data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, docstore.Document{ID: id, Fields: fields})
	}
	return docs, rows.Err()
}

func (s *Store) Add(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields docstore.Fields) error {
	if id == "" {
		return docstore.ErrInvalidID
	}
	return setFields(ctx, s.db, collection, id, fields)
}

func setFields(ctx context.Context, q database.DBTX, collection, id string, fields docstore.Fields) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if _, err := q.ExecContext(ctx, q.GetDialect().UpsertDocumentQuery(), collection, id, string(data)); err != nil {
		return fmt.Errorf("failed to write document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update reads, merges and rewrites the document in one transaction
func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Fields) error {
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		existing, err := getFields(ctx, tx, collection, id)
		if err != nil {
			return err
		}
		for k, v := range fields {
			existing[k] = v
		}
		return setFields(ctx, tx, collection, id, existing)
	})
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// decode keeps numbers as json.Number so integer fields survive the round trip
func decode(data string) (docstore.Fields, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	fields := docstore.Fields{}
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return fields, nil
}

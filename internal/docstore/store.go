// Package docstore is the document-database half of the backend: named collections of
// untyped field maps addressed by string ids.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidID    = errors.New("document id is required")
	ErrInvalidField = errors.New("field name is required")
)

// Document is a stored field map together with its id
type Document struct {
	ID     string
	Fields Fields
}

// Store is implemented by every document backend.
//
// Reads return copies; mutating a returned Fields never changes stored data.
type Store interface {
	// Get returns the document or ErrNotFound
	Get(ctx context.Context, collection, id string) (Document, error)

	// Where returns every document whose field equals value (see Equal)
	Where(ctx context.Context, collection, field string, value interface{}) ([]Document, error)

	// List returns every document in the collection
	List(ctx context.Context, collection string) ([]Document, error)

	// Add stores fields under a generated id and returns it
	Add(ctx context.Context, collection string, fields Fields) (string, error)

	// Set stores fields under id, replacing any existing document
	Set(ctx context.Context, collection, id string, fields Fields) error

	// Update merges fields into an existing document; ErrNotFound if it does not exist
	Update(ctx context.Context, collection, id string, fields Fields) error

	// Delete removes the document; deleting a missing document is not an error
	Delete(ctx context.Context, collection, id string) error

	Close() error
}

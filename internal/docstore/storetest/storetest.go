// Package storetest holds the behaviour every docstore.Store backend must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bytebabies/internal/docstore"
)

// Run exercises a backend. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) docstore.Store) {
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, "Children", "nope")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("AddThenGet", func(t *testing.T) {
		store := newStore(t)
		id, err := store.Add(ctx, "Children", docstore.Fields{"name": "Ava", "age": 3, "parentId": "p1"})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		doc, err := store.Get(ctx, "Children", id)
		require.NoError(t, err)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, "Ava", doc.Fields.String("name"))
		assert.Equal(t, 3, doc.Fields.Int("age"))
		assert.Equal(t, "p1", doc.Fields.String("parentId"))
	})

	t.Run("SetReplaces", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "Attendance", "c1_2024-05-01", docstore.Fields{"present": true, "note": "x"}))
		require.NoError(t, store.Set(ctx, "Attendance", "c1_2024-05-01", docstore.Fields{"present": false}))

		docs, err := store.List(ctx, "Attendance")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.False(t, docs[0].Fields.Bool("present"))
		assert.False(t, docs[0].Fields.Has("note"))
	})

	t.Run("UpdateMerges", func(t *testing.T) {
		store := newStore(t)
		id, err := store.Add(ctx, "Children", docstore.Fields{"name": "Ben", "allergies": "nuts"})
		require.NoError(t, err)

		require.NoError(t, store.Update(ctx, "Children", id, docstore.Fields{"name": "Benjamin", "age": 4}))

		doc, err := store.Get(ctx, "Children", id)
		require.NoError(t, err)
		assert.Equal(t, "Benjamin", doc.Fields.String("name"))
		assert.Equal(t, "nuts", doc.Fields.String("allergies"))
		assert.Equal(t, 4, doc.Fields.Int("age"))
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		store := newStore(t)
		err := store.Update(ctx, "Children", "ghost", docstore.Fields{"name": "x"})
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("WhereFiltersByTypedValue", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Add(ctx, "Messages", docstore.Fields{"content": "a", "toAdmin": true})
		require.NoError(t, err)
		_, err = store.Add(ctx, "Messages", docstore.Fields{"content": "b", "toAdmin": false})
		require.NoError(t, err)
		_, err = store.Add(ctx, "Messages", docstore.Fields{"content": "c", "toAdmin": "false"})
		require.NoError(t, err)

		docs, err := store.Where(ctx, "Messages", "toAdmin", false)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "b", docs[0].Fields.String("content"))
	})

	t.Run("WhereMatchesNumbers", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Add(ctx, "Children", docstore.Fields{"name": "Cleo", "age": 2})
		require.NoError(t, err)

		docs, err := store.Where(ctx, "Children", "age", int64(2))
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("CollectionsAreIsolated", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "Teachers", "same", docstore.Fields{"name": "T"}))
		require.NoError(t, store.Set(ctx, "Events", "same", docstore.Fields{"title": "E"}))

		doc, err := store.Get(ctx, "Teachers", "same")
		require.NoError(t, err)
		assert.Equal(t, "T", doc.Fields.String("name"))
		assert.False(t, doc.Fields.Has("title"))
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		store := newStore(t)
		id, err := store.Add(ctx, "Events", docstore.Fields{"title": "Picnic"})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, "Events", id))
		require.NoError(t, store.Delete(ctx, "Events", id))

		_, err = store.Get(ctx, "Events", id)
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})
}

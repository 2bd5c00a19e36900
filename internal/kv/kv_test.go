package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	t.Run("GetAbsent", func(t *testing.T) {
		var out doc
		found, err := db.Get("missing", &out)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, db.Put("k", doc{Name: "a", Count: 1}))

		var out doc
		found, err := db.Get("k", &out)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, doc{Name: "a", Count: 1}, out)
	})

	t.Run("PutReplaces", func(t *testing.T) {
		require.NoError(t, db.Put("k", doc{Name: "b", Count: 2}))

		var out doc
		found, err := db.Get("k", &out)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "b", out.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.Delete("k"))

		var out doc
		found, err := db.Get("k", &out)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("DeleteAbsentIsNoop", func(t *testing.T) {
		assert.NoError(t, db.Delete("never-existed"))
	})

	t.Run("Collections", func(t *testing.T) {
		require.NoError(t, db.Put("list", []doc{{Name: "a"}, {Name: "b"}}))

		var out []doc
		found, err := db.Get("list", &out)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Len(t, out, 2)
	})
}

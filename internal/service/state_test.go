package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildStateListFilter(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, bson.M{}, buildStateListFilter(nil, ""))
	})

	t.Run("enabled only", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, bson.M{"enabled": true}, buildStateListFilter(boolPtr(true), ""))
	})

	t.Run("search matches display name and slug", func(t *testing.T) {
		t.Parallel()

		filter := buildStateListFilter(nil, "harya")
		or, ok := filter["$or"].([]bson.M)
		require.True(t, ok)
		require.Len(t, or, 2)
		assert.Equal(t, bson.M{"$regex": "harya", "$options": "i"}, or[0]["displayState"])
		assert.Equal(t, bson.M{"$regex": "harya", "$options": "i"}, or[1]["state"])
	})

	t.Run("search regex is escaped", func(t *testing.T) {
		t.Parallel()

		filter := buildStateListFilter(nil, "a.b")
		or := filter["$or"].([]bson.M)
		assert.Equal(t, `a\.b`, or[0]["displayState"].(bson.M)["$regex"])
	})
}

func TestDisplayStateConflictFilter(t *testing.T) {
	t.Parallel()

	t.Run("anchored case-insensitive match", func(t *testing.T) {
		t.Parallel()

		filter := displayStateConflictFilter("Haryana", nil)
		assert.Equal(t, bson.M{"$regex": "^Haryana$", "$options": "i"}, filter["displayState"])
		_, hasExclude := filter["_id"]
		assert.False(t, hasExclude)
	})

	t.Run("escapes regex specials", func(t *testing.T) {
		t.Parallel()

		filter := displayStateConflictFilter("A (B)", nil)
		assert.Equal(t, `^A \(B\)$`, filter["displayState"].(bson.M)["$regex"])
	})

	t.Run("excludes self on rename", func(t *testing.T) {
		t.Parallel()

		selfID := primitive.NewObjectID()
		filter := displayStateConflictFilter("Haryana", &selfID)
		assert.Equal(t, bson.M{"$ne": selfID}, filter["_id"])
	})
}

package service

import (
	"testing"

	"uptown/internal/database/mongodb/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestComputeStartingPrice(t *testing.T) {
	t.Parallel()

	plans := []model.PlanPrice{
		{ID: primitive.NewObjectID(), Price: 12000, Duration: "monthly"},
		{ID: primitive.NewObjectID(), Price: 9500, Duration: "monthly"},
		{ID: primitive.NewObjectID(), Price: 0, Duration: "daily"},
	}

	t.Run("explicit price wins", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 8000.0, computeStartingPrice(floatPtr(8000), plans))
	})

	t.Run("zero explicit falls back to cheapest plan", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 9500.0, computeStartingPrice(floatPtr(0), plans))
	})

	t.Run("nil explicit falls back to cheapest plan", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 9500.0, computeStartingPrice(nil, plans))
	})

	t.Run("zero priced plans are ignored", func(t *testing.T) {
		t.Parallel()
		onlyZero := []model.PlanPrice{{ID: primitive.NewObjectID(), Price: 0}}
		assert.Equal(t, 0.0, computeStartingPrice(nil, onlyZero))
	})

	t.Run("no plans no explicit", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, computeStartingPrice(nil, nil))
	})
}

func TestNextImageOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, nextImageOrder(nil))
	assert.Equal(t, 4, nextImageOrder([]model.PropertyImage{
		{ID: primitive.NewObjectID(), Order: 1},
		{ID: primitive.NewObjectID(), Order: 3},
		{ID: primitive.NewObjectID(), Order: 2},
	}))
}

func TestApplyImageOrder(t *testing.T) {
	t.Parallel()

	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	third := primitive.NewObjectID()
	images := []model.PropertyImage{
		{ID: first, Order: 1},
		{ID: second, Order: 2},
		{ID: third, Order: 3},
	}

	t.Run("reorders by id", func(t *testing.T) {
		t.Parallel()
		result := applyImageOrder(images, map[string]int{
			first.Hex():  3,
			second.Hex(): 1,
			third.Hex():  2,
		})
		require.Len(t, result, 3)
		assert.Equal(t, second, result[0].ID)
		assert.Equal(t, third, result[1].ID)
		assert.Equal(t, first, result[2].ID)
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		t.Parallel()
		result := applyImageOrder(images, map[string]int{
			primitive.NewObjectID().Hex(): 99,
		})
		require.Len(t, result, 3)
		assert.Equal(t, first, result[0].ID)
		assert.Equal(t, 1, result[0].Order)
	})

	t.Run("untouched images keep order with stable sort", func(t *testing.T) {
		t.Parallel()
		result := applyImageOrder(images, map[string]int{second.Hex(): 1})
		// first 與 second 同為 order 1，stable sort 保留原相對順序
		assert.Equal(t, first, result[0].ID)
		assert.Equal(t, second, result[1].ID)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		t.Parallel()
		_ = applyImageOrder(images, map[string]int{first.Hex(): 9})
		assert.Equal(t, 1, images[0].Order)
	})
}

func TestBuildListFilter(t *testing.T) {
	t.Parallel()

	t.Run("default is approved and not deleted", func(t *testing.T) {
		t.Parallel()
		filter, err := buildListFilter(&ListPropertiesQuery{})
		require.NoError(t, err)
		assert.Equal(t, false, filter["isDeleted"])
		assert.Equal(t, "approved", filter["status"])
	})

	t.Run("all lifts status restriction", func(t *testing.T) {
		t.Parallel()
		filter, err := buildListFilter(&ListPropertiesQuery{All: true})
		require.NoError(t, err)
		assert.Equal(t, false, filter["isDeleted"])
		_, hasStatus := filter["status"]
		assert.False(t, hasStatus)
	})

	t.Run("all with explicit status", func(t *testing.T) {
		t.Parallel()
		filter, err := buildListFilter(&ListPropertiesQuery{All: true, Status: "draft"})
		require.NoError(t, err)
		assert.Equal(t, "draft", filter["status"])
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := buildListFilter(&ListPropertiesQuery{All: true, Status: "bogus"})
		assert.Error(t, err)
	})

	t.Run("city and microlocation filters", func(t *testing.T) {
		t.Parallel()
		cityID := primitive.NewObjectID()
		microID := primitive.NewObjectID()
		filter, err := buildListFilter(&ListPropertiesQuery{
			City:          cityID.Hex(),
			Microlocation: microID.Hex(),
		})
		require.NoError(t, err)
		assert.Equal(t, cityID, filter["location.city"])
		assert.Equal(t, microID, filter["location.micro_locations"])
	})

	t.Run("malformed city id is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := buildListFilter(&ListPropertiesQuery{City: "not-an-id"})
		assert.Error(t, err)
	})

	t.Run("search uses escaped case insensitive regex", func(t *testing.T) {
		t.Parallel()
		filter, err := buildListFilter(&ListPropertiesQuery{Search: "a.b(c"})
		require.NoError(t, err)
		regex, ok := filter["name"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, `a\.b\(c`, regex["$regex"])
		assert.Equal(t, "i", regex["$options"])
	})

	t.Run("featured and verified flags", func(t *testing.T) {
		t.Parallel()
		filter, err := buildListFilter(&ListPropertiesQuery{
			Featured: boolPtr(true),
			Verified: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, true, filter["featured"])
		assert.Equal(t, false, filter["verified"])
	})
}

func TestRegexEscape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", regexEscape("plain"))
	assert.Equal(t, `a\.b\*c\[d\]`, regexEscape("a.b*c[d]"))
	assert.Equal(t, `\^\$\(\)\{\}\|\?\+\\`, regexEscape(`^$(){}|?+\`))
}

func TestParseObjectIDs(t *testing.T) {
	t.Parallel()

	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	ids, err := parseObjectIDs([]string{first.Hex(), "", second.Hex()}, "amenities")
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{first, second}, ids)

	_, err = parseObjectIDs([]string{"zzz"}, "amenities")
	assert.Error(t, err)
}

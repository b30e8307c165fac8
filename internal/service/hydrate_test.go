package service

import (
	"testing"
	"time"

	"uptown/internal/database/mongodb/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildPropertyResponse(t *testing.T) {
	t.Parallel()

	cityID := primitive.NewObjectID()
	microID := primitive.NewObjectID()
	amenityID := primitive.NewObjectID()
	planTypeID := primitive.NewObjectID()
	planItemID := primitive.NewObjectID()

	refs := referenceMaps{
		cities: map[string]*model.CityContent{
			cityID.Hex(): {ID: cityID, City: "gurgaon", DisplayCity: "Gurgaon"},
		},
		micros: map[string]*model.Microlocation{
			microID.Hex(): {ID: microID, Name: "Sector 48", Slug: "sector-48", City: cityID},
		},
		amenities: map[string]*model.Amenity{
			amenityID.Hex(): {ID: amenityID, Name: "Wifi"},
		},
		plans: map[string]*model.ColivingPlan{
			planTypeID.Hex(): {ID: planTypeID, Type: "Private Room"},
		},
	}

	createdAt := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	property := &model.Property{
		ID:   primitive.NewObjectID(),
		Name: "Uptown House",
		Slug: "uptown-house",
		Location: model.PropertyLocation{
			City:           &cityID,
			MicroLocations: []primitive.ObjectID{microID},
		},
		Amenities: []primitive.ObjectID{amenityID},
		ColivingPlans: []model.PlanPrice{
			{ID: planItemID, Plan: planTypeID, Price: 15000, Duration: "monthly"},
		},
		StartingPrice: 15000,
		Status:        "approved",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	response := buildPropertyResponse(property, refs)

	assert.Equal(t, property.ID.Hex(), response.ID)
	assert.Equal(t, "2025-06-01T10:30:00Z", response.CreatedAt)

	require.NotNil(t, response.Location.City)
	assert.Equal(t, "Gurgaon", response.Location.City.Name)
	assert.Equal(t, "gurgaon", response.Location.City.Slug)

	require.Len(t, response.Location.MicroLocations, 1)
	assert.Equal(t, "Sector 48", response.Location.MicroLocations[0].Name)

	require.Len(t, response.Amenities, 1)
	assert.Equal(t, "Wifi", response.Amenities[0].Name)

	require.Len(t, response.ColivingPlans, 1)
	require.NotNil(t, response.ColivingPlans[0].Plan)
	assert.Equal(t, "Private Room", response.ColivingPlans[0].Plan.Name)
	assert.Equal(t, planItemID.Hex(), response.ColivingPlans[0].ID)

	// nil slices 一律回空陣列
	assert.NotNil(t, response.Tags)
	assert.NotNil(t, response.Images)
	assert.NotNil(t, response.Location.NearbyPlaces)
}

func TestBuildPropertyResponseDanglingRefs(t *testing.T) {
	t.Parallel()

	cityID := primitive.NewObjectID()
	microID := primitive.NewObjectID()
	amenityID := primitive.NewObjectID()
	planTypeID := primitive.NewObjectID()

	property := &model.Property{
		ID: primitive.NewObjectID(),
		Location: model.PropertyLocation{
			City:           &cityID,
			MicroLocations: []primitive.ObjectID{microID},
		},
		Amenities: []primitive.ObjectID{amenityID},
		ColivingPlans: []model.PlanPrice{
			{ID: primitive.NewObjectID(), Plan: planTypeID, Price: 8000},
		},
	}

	response := buildPropertyResponse(property, referenceMaps{})

	// 懸掛參照：name 退回 id，不報錯
	require.NotNil(t, response.Location.City)
	assert.Equal(t, cityID.Hex(), response.Location.City.Name)
	assert.Equal(t, microID.Hex(), response.Location.MicroLocations[0].Name)
	assert.Equal(t, amenityID.Hex(), response.Amenities[0].Name)
	require.NotNil(t, response.ColivingPlans[0].Plan)
	assert.Equal(t, planTypeID.Hex(), response.ColivingPlans[0].Plan.Name)
}

func TestBuildPropertyResponseNoPlanRef(t *testing.T) {
	t.Parallel()

	property := &model.Property{
		ID: primitive.NewObjectID(),
		ColivingPlans: []model.PlanPrice{
			{ID: primitive.NewObjectID(), Price: 5000, Duration: "weekly"},
		},
	}

	response := buildPropertyResponse(property, referenceMaps{})

	require.Len(t, response.ColivingPlans, 1)
	assert.Nil(t, response.ColivingPlans[0].Plan)
	assert.Nil(t, response.Location.City)
}

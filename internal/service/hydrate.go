package service

import (
	"context"
	"time"

	"uptown/internal/database/mongodb/model"
	"uptown/internal/dto"
	cErr "uptown/internal/pkg/error"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// referenceMaps 批次撈回的弱參照目標，以 id hex 為 key
type referenceMaps struct {
	cities    map[string]*model.CityContent
	micros    map[string]*model.Microlocation
	amenities map[string]*model.Amenity
	plans     map[string]*model.ColivingPlan
}

// hydrateOne 解析單筆物件的弱參照
func (s *PropertyService) hydrateOne(ctx context.Context, property *model.Property) (*dto.PropertyResponseDto, error) {
	results, hydrateError := s.hydrateMany(ctx, []*model.Property{property})
	if hydrateError != nil {
		return nil, hydrateError
	}
	return &results[0], nil
}

// hydrateMany 收集整批物件的參照 id、各 collection 一次撈回後純函式組裝。
// 懸掛參照不報錯：name 退回 id 字串。
func (s *PropertyService) hydrateMany(ctx context.Context, properties []*model.Property) ([]dto.PropertyResponseDto, error) {
	cityIDs := map[primitive.ObjectID]bool{}
	microIDs := map[primitive.ObjectID]bool{}
	amenityIDs := map[primitive.ObjectID]bool{}
	planIDs := map[primitive.ObjectID]bool{}

	for _, property := range properties {
		if property.Location.City != nil {
			cityIDs[*property.Location.City] = true
		}
		for _, id := range property.Location.MicroLocations {
			microIDs[id] = true
		}
		for _, id := range property.Amenities {
			amenityIDs[id] = true
		}
		for _, plan := range property.ColivingPlans {
			if !plan.Plan.IsZero() {
				planIDs[plan.Plan] = true
			}
		}
	}

	refs := referenceMaps{
		cities:    map[string]*model.CityContent{},
		micros:    map[string]*model.Microlocation{},
		amenities: map[string]*model.Amenity{},
		plans:     map[string]*model.ColivingPlan{},
	}

	if len(cityIDs) > 0 {
		cities, listError := s.cityRepo.List(ctx, bson.M{"_id": bson.M{"$in": idSlice(cityIDs)}})
		if listError != nil {
			return nil, cErr.DatabaseError(listError.Error())
		}
		for _, city := range cities {
			refs.cities[city.ID.Hex()] = city
		}
	}
	if len(microIDs) > 0 {
		micros, listError := s.microlocationRepo.List(ctx, bson.M{"_id": bson.M{"$in": idSlice(microIDs)}})
		if listError != nil {
			return nil, cErr.DatabaseError(listError.Error())
		}
		for _, micro := range micros {
			refs.micros[micro.ID.Hex()] = micro
		}
	}
	if len(amenityIDs) > 0 {
		amenities, listError := s.amenityRepo.List(ctx, bson.M{"_id": bson.M{"$in": idSlice(amenityIDs)}})
		if listError != nil {
			return nil, cErr.DatabaseError(listError.Error())
		}
		for _, amenity := range amenities {
			refs.amenities[amenity.ID.Hex()] = amenity
		}
	}
	if len(planIDs) > 0 {
		plans, listError := s.colivingPlanRepo.List(ctx, bson.M{"_id": bson.M{"$in": idSlice(planIDs)}})
		if listError != nil {
			return nil, cErr.DatabaseError(listError.Error())
		}
		for _, plan := range plans {
			refs.plans[plan.ID.Hex()] = plan
		}
	}

	results := make([]dto.PropertyResponseDto, 0, len(properties))
	for _, property := range properties {
		results = append(results, buildPropertyResponse(property, refs))
	}
	return results, nil
}

// buildPropertyResponse 純函式：model + 參照 map 組裝回應
func buildPropertyResponse(property *model.Property, refs referenceMaps) dto.PropertyResponseDto {
	response := dto.PropertyResponseDto{
		ID:                  property.ID.Hex(),
		Name:                property.Name,
		Slug:                property.Slug,
		Description:         property.Description,
		Tags:                emptyIfNil(property.Tags),
		Images:              property.Images,
		SpaceContactDetails: property.SpaceContactDetails,
		StartingPrice:       property.StartingPrice,
		Rating:              property.Rating,
		ReviewCount:         property.ReviewCount,
		Seo:                 property.Seo,
		OtherDetail:         property.OtherDetail,
		SpaceType:           property.SpaceType,
		Status:              property.Status,
		Featured:            property.Featured,
		Verified:            property.Verified,
		IsDeleted:           property.IsDeleted,
		CreatedAt:           property.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           property.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if response.Images == nil {
		response.Images = []model.PropertyImage{}
	}

	response.Location = dto.HydratedLocationDto{
		Address:      property.Location.Address,
		Latitude:     property.Location.Latitude,
		Longitude:    property.Location.Longitude,
		State:        property.Location.State,
		Country:      property.Location.Country,
		LocationSlug: property.Location.LocationSlug,
		MetroDetail:  property.Location.MetroDetail,
		NearbyPlaces: property.Location.NearbyPlaces,
	}
	if response.Location.NearbyPlaces == nil {
		response.Location.NearbyPlaces = []model.NearbyPlace{}
	}
	if property.Location.City != nil {
		response.Location.City = cityRef(*property.Location.City, refs.cities)
	}
	response.Location.MicroLocations = make([]dto.RefDto, 0, len(property.Location.MicroLocations))
	for _, id := range property.Location.MicroLocations {
		response.Location.MicroLocations = append(response.Location.MicroLocations, microRef(id, refs.micros))
	}

	response.Amenities = make([]dto.RefDto, 0, len(property.Amenities))
	for _, id := range property.Amenities {
		response.Amenities = append(response.Amenities, amenityRef(id, refs.amenities))
	}

	response.ColivingPlans = make([]dto.HydratedPlanPriceDto, 0, len(property.ColivingPlans))
	for _, plan := range property.ColivingPlans {
		hydrated := dto.HydratedPlanPriceDto{
			ID:       plan.ID.Hex(),
			Price:    plan.Price,
			Duration: plan.Duration,
		}
		if !plan.Plan.IsZero() {
			ref := planRef(plan.Plan, refs.plans)
			hydrated.Plan = &ref
		}
		response.ColivingPlans = append(response.ColivingPlans, hydrated)
	}

	return response
}

func cityRef(id primitive.ObjectID, cities map[string]*model.CityContent) *dto.RefDto {
	hex := id.Hex()
	if city, ok := cities[hex]; ok {
		return &dto.RefDto{ID: hex, Name: city.DisplayCity, Slug: city.City}
	}
	// 懸掛參照：name 退回 id
	return &dto.RefDto{ID: hex, Name: hex}
}

func microRef(id primitive.ObjectID, micros map[string]*model.Microlocation) dto.RefDto {
	hex := id.Hex()
	if micro, ok := micros[hex]; ok {
		return dto.RefDto{ID: hex, Name: micro.Name, Slug: micro.Slug}
	}
	return dto.RefDto{ID: hex, Name: hex}
}

func amenityRef(id primitive.ObjectID, amenities map[string]*model.Amenity) dto.RefDto {
	hex := id.Hex()
	if amenity, ok := amenities[hex]; ok {
		return dto.RefDto{ID: hex, Name: amenity.Name}
	}
	return dto.RefDto{ID: hex, Name: hex}
}

func planRef(id primitive.ObjectID, plans map[string]*model.ColivingPlan) dto.RefDto {
	hex := id.Hex()
	if plan, ok := plans[hex]; ok {
		return dto.RefDto{ID: hex, Name: plan.Type}
	}
	return dto.RefDto{ID: hex, Name: hex}
}

func idSlice(set map[primitive.ObjectID]bool) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

package repository

import (
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
)

// 統一管理所有 MongoDB repository
type MongoDBRepository struct {
	propertyRepo      *PropertyRepository
	stateRepo         *StateRepository
	cityRepo          *CityContentRepository
	microlocationRepo *MicrolocationRepository
	amenityRepo       *AmenityRepository
	colivingPlanRepo  *ColivingPlanRepository
	leadRepo          *LeadRepository
	mediaFileRepo     *MediaFileRepository
}

// 建立 MongoDB repository 物件
func NewMongoDBRepository(
	propertyRepo *PropertyRepository,
	stateRepo *StateRepository,
	cityRepo *CityContentRepository,
	microlocationRepo *MicrolocationRepository,
	amenityRepo *AmenityRepository,
	colivingPlanRepo *ColivingPlanRepository,
	leadRepo *LeadRepository,
	mediaFileRepo *MediaFileRepository,
) *MongoDBRepository {
	return &MongoDBRepository{
		propertyRepo:      propertyRepo,
		stateRepo:         stateRepo,
		cityRepo:          cityRepo,
		microlocationRepo: microlocationRepo,
		amenityRepo:       amenityRepo,
		colivingPlanRepo:  colivingPlanRepo,
		leadRepo:          leadRepo,
		mediaFileRepo:     mediaFileRepo,
	}
}

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewPropertyRepository,
	NewStateRepository,
	NewCityContentRepository,
	NewMicrolocationRepository,
	NewAmenityRepository,
	NewColivingPlanRepository,
	NewLeadRepository,
	NewMediaFileRepository,
	NewMongoDBRepository)

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}

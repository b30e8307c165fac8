package service

import (
	"context"

	"uptown/internal/database/mongodb/model"
	mongoDb "uptown/internal/database/mongodb/repository"
	"uptown/internal/dto"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type LeadService struct {
	trace    *telemetry.Trace
	leadRepo *mongoDb.LeadRepository
	logger   *zap.Logger
}

func NewLeadService(trace *telemetry.Trace, leadRepo *mongoDb.LeadRepository, logger *zap.Logger) *LeadService {
	return &LeadService{trace: trace, leadRepo: leadRepo, logger: logger}
}

// Create 建立詢問單；propertyId 只驗格式，不驗存在性
func (s *LeadService) Create(ctx context.Context, input *dto.CreateLeadDto) (_ *model.Lead, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	lead := &model.Lead{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		RoomType:      input.RoomType,
		MoveInDate:    input.MoveInDate,
		City:          input.City,
		Microlocation: input.Microlocation,
		URL:           input.URL,
	}
	if input.PropertyID != "" {
		propertyID, parseError := primitive.ObjectIDFromHex(input.PropertyID)
		if parseError != nil {
			return nil, cErr.InvalidReference("invalid property id: " + input.PropertyID)
		}
		lead.PropertyID = &propertyID
	}

	created, createError := s.leadRepo.Create(ctx, lead)
	if createError != nil {
		return nil, cErr.DatabaseError(createError.Error())
	}

	s.logger.Info("lead created", zap.String("id", created.ID.Hex()))
	return created, nil
}

// List 依城市/物件篩選，新的在前；回傳符合總數
func (s *LeadService) List(ctx context.Context, city, propertyHex string, page, limit int64) (_ []*model.Lead, totalCount int64, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	filter := bson.M{}
	if city != "" {
		filter["city"] = city
	}
	if propertyHex != "" {
		propertyID, parseError := primitive.ObjectIDFromHex(propertyHex)
		if parseError != nil {
			return nil, 0, cErr.InvalidReference("invalid property id: " + propertyHex)
		}
		filter["propertyId"] = propertyID
	}

	totalCount, countError := s.leadRepo.Count(ctx, filter)
	if countError != nil {
		return nil, 0, cErr.DatabaseError(countError.Error())
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
		if page > 1 {
			findOptions.SetSkip((page - 1) * limit)
		}
	}

	leads, listError := s.leadRepo.List(ctx, filter, findOptions)
	if listError != nil {
		return nil, 0, cErr.DatabaseError(listError.Error())
	}
	if leads == nil {
		leads = []*model.Lead{}
	}
	return leads, totalCount, nil
}

func (s *LeadService) Delete(ctx context.Context, leadID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if deleteError := s.leadRepo.DeleteByID(ctx, leadID); deleteError != nil {
		if deleteError == mongo.ErrNoDocuments {
			return cErr.NotFound("lead not found")
		}
		return cErr.DatabaseError(deleteError.Error())
	}
	return nil
}

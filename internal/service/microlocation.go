package service

import (
	"context"
	"strings"

	"uptown/internal/database/mongodb/model"
	mongoDb "uptown/internal/database/mongodb/repository"
	"uptown/internal/dto"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/telemetry"
	"uptown/utils/slugify"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MicrolocationService struct {
	trace             *telemetry.Trace
	microlocationRepo *mongoDb.MicrolocationRepository
	cityRepo          *mongoDb.CityContentRepository
	logger            *zap.Logger
}

func NewMicrolocationService(
	trace *telemetry.Trace,
	microlocationRepo *mongoDb.MicrolocationRepository,
	cityRepo *mongoDb.CityContentRepository,
	logger *zap.Logger,
) *MicrolocationService {
	return &MicrolocationService{
		trace:             trace,
		microlocationRepo: microlocationRepo,
		cityRepo:          cityRepo,
		logger:            logger,
	}
}

// Create 建立微區位；slug 只需在所屬城市內唯一
func (s *MicrolocationService) Create(ctx context.Context, input *dto.CreateMicrolocationDto) (_ *model.Microlocation, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	city, cityError := s.resolveCity(ctx, input.City)
	if cityError != nil {
		return nil, cityError
	}

	slugValue := input.Slug
	if slugValue == "" {
		slugValue = slugify.Make(input.Name)
	} else {
		slugValue = slugify.Make(slugValue)
	}
	if slugValue == "" {
		return nil, cErr.ValidateErr("cannot derive microlocation slug")
	}

	exists, existsError := s.microlocationRepo.ExistsByCityAndSlug(ctx, city.ID, slugValue, nil)
	if existsError != nil {
		return nil, cErr.DatabaseError(existsError.Error())
	}
	if exists {
		return nil, cErr.Conflict("microlocation already exists in city: " + slugValue)
	}

	micro := &model.Microlocation{
		Name:    strings.TrimSpace(input.Name),
		Slug:    slugValue,
		City:    city.ID,
		Enabled: true,
	}
	if input.Enabled != nil {
		micro.Enabled = *input.Enabled
	}

	created, createError := s.microlocationRepo.Create(ctx, micro)
	if createError != nil {
		if mongo.IsDuplicateKeyError(createError) {
			return nil, cErr.Conflict("microlocation already exists in city: " + slugValue)
		}
		return nil, cErr.DatabaseError(createError.Error())
	}
	return created, nil
}

// resolveCity 城市必須已存在，否則 InvalidReference
func (s *MicrolocationService) resolveCity(ctx context.Context, key string) (*model.CityContent, error) {
	if id, parseError := primitive.ObjectIDFromHex(key); parseError == nil {
		city, getError := s.cityRepo.GetByID(ctx, id)
		if getError == nil {
			return city, nil
		}
		if getError != mongo.ErrNoDocuments {
			return nil, cErr.DatabaseError(getError.Error())
		}
	}
	city, getError := s.cityRepo.GetBySlug(ctx, key)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.InvalidReference("city not found: " + key)
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	return city, nil
}

// GetByCityAndSlug 以 (city, slug) 複合鍵取件
func (s *MicrolocationService) GetByCityAndSlug(ctx context.Context, cityKey, slugValue string) (_ *model.Microlocation, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	city, cityError := s.resolveCity(ctx, cityKey)
	if cityError != nil {
		return nil, cityError
	}

	micro, getError := s.microlocationRepo.GetByCityAndSlug(ctx, city.ID, slugValue)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("microlocation not found: " + slugValue)
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	return micro, nil
}

// List 依城市與 enabled 篩選；預設排除已刪除
func (s *MicrolocationService) List(ctx context.Context, cityKey string, enabled *bool) (_ []*model.Microlocation, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	filter := bson.M{"isDeleted": false}
	if cityKey != "" {
		city, cityError := s.resolveCity(ctx, cityKey)
		if cityError != nil {
			return nil, cityError
		}
		filter["city"] = city.ID
	}
	if enabled != nil {
		filter["enabled"] = *enabled
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	micros, listError := s.microlocationRepo.List(ctx, filter, findOptions)
	if listError != nil {
		return nil, cErr.DatabaseError(listError.Error())
	}
	if micros == nil {
		micros = []*model.Microlocation{}
	}
	return micros, nil
}

func (s *MicrolocationService) Update(ctx context.Context, microID primitive.ObjectID, input *dto.UpdateMicrolocationDto) (_ *model.Microlocation, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	micro, getError := s.microlocationRepo.GetByID(ctx, microID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("microlocation not found")
		}
		return nil, cErr.DatabaseError(getError.Error())
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil && *input.Slug != "" {
		newSlug := slugify.Make(*input.Slug)
		if newSlug != micro.Slug {
			exists, existsError := s.microlocationRepo.ExistsByCityAndSlug(ctx, micro.City, newSlug, &micro.ID)
			if existsError != nil {
				return nil, cErr.DatabaseError(existsError.Error())
			}
			if exists {
				return nil, cErr.Conflict("microlocation already exists in city: " + newSlug)
			}
			set["slug"] = newSlug
		}
	}
	if input.Enabled != nil {
		set["enabled"] = *input.Enabled
	}
	if len(set) == 0 {
		return micro, nil
	}

	if _, updateError := s.microlocationRepo.UpdateByID(ctx, micro.ID, bson.M{"$set": set}); updateError != nil {
		if mongo.IsDuplicateKeyError(updateError) {
			return nil, cErr.Conflict("microlocation slug already in use")
		}
		return nil, cErr.DatabaseError(updateError.Error())
	}

	updated, getError := s.microlocationRepo.GetByID(ctx, micro.ID)
	if getError != nil {
		return nil, cErr.DatabaseError(getError.Error())
	}
	return updated, nil
}

// UpsertContent SEO 內容 upsert；(city, slug) 不存在時建殼（name 退回 slug）
func (s *MicrolocationService) UpsertContent(ctx context.Context, cityKey, slugRaw string, input *dto.MicrolocationContentDto) (_ *model.Microlocation, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	city, cityError := s.resolveCity(ctx, cityKey)
	if cityError != nil {
		return nil, cityError
	}
	slugValue := slugify.Make(slugRaw)
	if slugValue == "" {
		return nil, cErr.ValidateErr("microlocation slug is required")
	}

	set := bson.M{}
	applyStringField(set, "name", input.Name)
	applyStringField(set, "footerTitle", input.FooterTitle)
	applyStringField(set, "footerDescription", input.FooterDescription)
	applyStringField(set, "metaTitle", input.MetaTitle)
	applyStringField(set, "metaDescription", input.MetaDescription)
	applyStringField(set, "schemaMarkup", input.SchemaMarkup)
	if len(set) == 0 {
		return nil, cErr.ValidateErr("no content fields provided")
	}

	setOnInsert := bson.M{"enabled": true, "isDeleted": false}
	if input.Name == nil {
		setOnInsert["name"] = slugValue
	}

	micro, upsertError := s.microlocationRepo.UpsertByCityAndSlug(ctx, city.ID, slugValue, set, setOnInsert)
	if upsertError != nil {
		return nil, cErr.DatabaseError(upsertError.Error())
	}
	return micro, nil
}

// SoftDelete 標記刪除並停用
func (s *MicrolocationService) SoftDelete(ctx context.Context, microID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	update := bson.M{"$set": bson.M{"isDeleted": true, "enabled": false}}
	if _, updateError := s.microlocationRepo.UpdateByID(ctx, microID, update); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return cErr.NotFound("microlocation not found")
		}
		return cErr.DatabaseError(updateError.Error())
	}
	return nil
}

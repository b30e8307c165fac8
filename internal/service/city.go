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

type CityService struct {
	trace     *telemetry.Trace
	cityRepo  *mongoDb.CityContentRepository
	stateRepo *mongoDb.StateRepository
	logger    *zap.Logger
}

func NewCityService(
	trace *telemetry.Trace,
	cityRepo *mongoDb.CityContentRepository,
	stateRepo *mongoDb.StateRepository,
	logger *zap.Logger,
) *CityService {
	return &CityService{trace: trace, cityRepo: cityRepo, stateRepo: stateRepo, logger: logger}
}

// Create 建立城市；州別參照必須存在（id 或 slug）
func (s *CityService) Create(ctx context.Context, input *dto.CreateCityDto) (_ *model.CityContent, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	slugValue := input.City
	if slugValue == "" {
		slugValue = slugify.Make(input.DisplayCity)
	} else {
		slugValue = slugify.Make(slugValue)
	}
	if slugValue == "" {
		return nil, cErr.ValidateErr("cannot derive city slug")
	}

	state, stateError := s.resolveState(ctx, input.State)
	if stateError != nil {
		return nil, stateError
	}

	exists, existsError := s.cityRepo.ExistsBySlug(ctx, slugValue, nil)
	if existsError != nil {
		return nil, cErr.DatabaseError(existsError.Error())
	}
	if exists {
		return nil, cErr.Conflict("city already exists: " + slugValue)
	}

	city := &model.CityContent{
		City:        slugValue,
		DisplayCity: strings.TrimSpace(input.DisplayCity),
		State:       state.ID,
	}
	created, createError := s.cityRepo.Create(ctx, city)
	if createError != nil {
		if mongo.IsDuplicateKeyError(createError) {
			return nil, cErr.Conflict("city already exists: " + slugValue)
		}
		return nil, cErr.DatabaseError(createError.Error())
	}
	return created, nil
}

// resolveState 州別必須已存在，否則 InvalidReference
func (s *CityService) resolveState(ctx context.Context, key string) (*model.State, error) {
	if id, parseError := primitive.ObjectIDFromHex(key); parseError == nil {
		state, getError := s.stateRepo.GetByID(ctx, id)
		if getError == nil {
			return state, nil
		}
		if getError != mongo.ErrNoDocuments {
			return nil, cErr.DatabaseError(getError.Error())
		}
	}
	state, getError := s.stateRepo.GetBySlug(ctx, key)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.InvalidReference("state not found: " + key)
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	return state, nil
}

// GetByKey key 可為 ObjectID hex 或 city slug
func (s *CityService) GetByKey(ctx context.Context, key string) (_ *model.CityContent, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	return s.resolve(ctx, key)
}

func (s *CityService) resolve(ctx context.Context, key string) (*model.CityContent, error) {
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
			return nil, cErr.NotFound("city not found: " + key)
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	return city, nil
}

// List 依州別與關鍵字篩選
func (s *CityService) List(ctx context.Context, stateKey string, search string) (_ []*model.CityContent, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	filter := bson.M{}
	if stateKey != "" {
		state, stateError := s.resolveState(ctx, stateKey)
		if stateError != nil {
			return nil, stateError
		}
		filter["state"] = state.ID
	}
	if search != "" {
		filter["displayCity"] = bson.M{"$regex": regexEscape(search), "$options": "i"}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "displayCity", Value: 1}})
	cities, listError := s.cityRepo.List(ctx, filter, findOptions)
	if listError != nil {
		return nil, cErr.DatabaseError(listError.Error())
	}
	if cities == nil {
		cities = []*model.CityContent{}
	}
	return cities, nil
}

func (s *CityService) Update(ctx context.Context, key string, input *dto.UpdateCityDto) (_ *model.CityContent, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	city, resolveError := s.resolve(ctx, key)
	if resolveError != nil {
		return nil, resolveError
	}

	set := bson.M{}
	if input.City != nil && *input.City != "" {
		newSlug := slugify.Make(*input.City)
		if newSlug != city.City {
			exists, existsError := s.cityRepo.ExistsBySlug(ctx, newSlug, &city.ID)
			if existsError != nil {
				return nil, cErr.DatabaseError(existsError.Error())
			}
			if exists {
				return nil, cErr.Conflict("city already exists: " + newSlug)
			}
			set["city"] = newSlug
		}
	}
	if input.DisplayCity != nil {
		set["displayCity"] = strings.TrimSpace(*input.DisplayCity)
	}
	if input.State != nil {
		state, stateError := s.resolveState(ctx, *input.State)
		if stateError != nil {
			return nil, stateError
		}
		set["state"] = state.ID
	}
	if len(set) == 0 {
		return city, nil
	}

	if _, updateError := s.cityRepo.UpdateByID(ctx, city.ID, bson.M{"$set": set}); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("city not found")
		}
		if mongo.IsDuplicateKeyError(updateError) {
			return nil, cErr.Conflict("city slug already in use")
		}
		return nil, cErr.DatabaseError(updateError.Error())
	}

	updated, getError := s.cityRepo.GetByID(ctx, city.ID)
	if getError != nil {
		return nil, cErr.DatabaseError(getError.Error())
	}
	return updated, nil
}

// UpsertContent SEO 內容 upsert；城市不存在時建立殼（displayCity 退回 slug）
func (s *CityService) UpsertContent(ctx context.Context, citySlug string, input *dto.CityContentDto) (_ *model.CityContent, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	slugValue := slugify.Make(citySlug)
	if slugValue == "" {
		return nil, cErr.ValidateErr("city slug is required")
	}

	set := bson.M{}
	applyStringField(set, "title", input.Title)
	applyStringField(set, "description", input.Description)
	applyStringField(set, "footerTitle", input.FooterTitle)
	applyStringField(set, "footerDescription", input.FooterDescription)
	applyStringField(set, "metaTitle", input.MetaTitle)
	applyStringField(set, "metaDescription", input.MetaDescription)
	applyStringField(set, "schemaMarkup", input.SchemaMarkup)
	if len(set) == 0 {
		return nil, cErr.ValidateErr("no content fields provided")
	}

	city, upsertError := s.cityRepo.UpsertContentBySlug(ctx, slugValue, set)
	if upsertError != nil {
		return nil, cErr.DatabaseError(upsertError.Error())
	}
	return city, nil
}

// Delete 硬刪除；物件端 location.city 懸掛參照由讀取端寬鬆解析
func (s *CityService) Delete(ctx context.Context, key string) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	city, resolveError := s.resolve(ctx, key)
	if resolveError != nil {
		return resolveError
	}
	if deleteError := s.cityRepo.DeleteByID(ctx, city.ID); deleteError != nil {
		return cErr.DatabaseError(deleteError.Error())
	}
	s.logger.Info("city deleted", zap.String("city", city.City))
	return nil
}

// BackfillStates 依 city slug → state slug 對照表補齊城市的州別參照。
// 找不到的州別記 warn 後跳過，不整批失敗；回傳實際被修改的文件數。
func (s *CityService) BackfillStates(ctx context.Context, mapping map[string]string) (modifiedCount int64, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	for citySlug, stateSlug := range mapping {
		state, getError := s.stateRepo.GetBySlug(ctx, stateSlug)
		if getError != nil {
			if getError == mongo.ErrNoDocuments {
				s.logger.Warn("backfill skipped, state not found",
					zap.String("city", citySlug),
					zap.String("state", stateSlug))
				continue
			}
			return modifiedCount, cErr.DatabaseError(getError.Error())
		}

		updated, updateError := s.cityRepo.UpdateMany(ctx,
			bson.M{"city": citySlug},
			bson.M{"$set": bson.M{"state": state.ID}})
		if updateError != nil {
			return modifiedCount, cErr.DatabaseError(updateError.Error())
		}
		s.logger.Info("backfilled city state",
			zap.String("city", citySlug),
			zap.String("state", stateSlug),
			zap.Int64("modified", updated))
		modifiedCount += updated
	}
	return modifiedCount, nil
}

func applyStringField(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}

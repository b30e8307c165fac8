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

type StateService struct {
	trace     *telemetry.Trace
	stateRepo *mongoDb.StateRepository
	logger    *zap.Logger
}

func NewStateService(trace *telemetry.Trace, stateRepo *mongoDb.StateRepository, logger *zap.Logger) *StateService {
	return &StateService{trace: trace, stateRepo: stateRepo, logger: logger}
}

// Create 建立州別；slug（State 欄位）未給時由 DisplayState 產生
func (s *StateService) Create(ctx context.Context, input *dto.CreateStateDto) (_ *model.State, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	slugValue := input.State
	if slugValue == "" {
		slugValue = slugify.Make(input.DisplayState)
	} else {
		slugValue = slugify.Make(slugValue)
	}
	if slugValue == "" {
		return nil, cErr.ValidateErr("cannot derive state slug")
	}

	exists, existsError := s.stateRepo.ExistsBySlug(ctx, slugValue, nil)
	if existsError != nil {
		return nil, cErr.DatabaseError(existsError.Error())
	}
	if exists {
		return nil, cErr.Conflict("state already exists: " + slugValue)
	}

	displayState := strings.TrimSpace(input.DisplayState)
	if displayState != "" {
		nameTaken, nameError := s.stateRepo.Exists(ctx, displayStateConflictFilter(displayState, nil))
		if nameError != nil {
			return nil, cErr.DatabaseError(nameError.Error())
		}
		if nameTaken {
			return nil, cErr.Conflict("state display name already exists: " + displayState)
		}
	}

	state := &model.State{
		State:        slugValue,
		DisplayState: displayState,
		Country:      input.Country,
		Enabled:      true,
	}
	if input.Enabled != nil {
		state.Enabled = *input.Enabled
	}
	if input.Order != nil {
		state.Order = *input.Order
	}

	created, createError := s.stateRepo.Create(ctx, state)
	if createError != nil {
		if mongo.IsDuplicateKeyError(createError) {
			return nil, cErr.Conflict("state already exists: " + slugValue)
		}
		return nil, cErr.DatabaseError(createError.Error())
	}
	return created, nil
}

// GetByKey key 可為 ObjectID hex 或 state slug
func (s *StateService) GetByKey(ctx context.Context, key string) (_ *model.State, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	return s.resolve(ctx, key)
}

func (s *StateService) resolve(ctx context.Context, key string) (*model.State, error) {
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
			return nil, cErr.NotFound("state not found: " + key)
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	return state, nil
}

// List 依 enabled 與關鍵字篩選，按 order、displayState 排序
func (s *StateService) List(ctx context.Context, enabled *bool, search string) (_ []*model.State, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	filter := buildStateListFilter(enabled, search)

	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "displayState", Value: 1}})
	states, listError := s.stateRepo.List(ctx, filter, findOptions)
	if listError != nil {
		return nil, cErr.DatabaseError(listError.Error())
	}
	if states == nil {
		states = []*model.State{}
	}
	return states, nil
}

func (s *StateService) Update(ctx context.Context, key string, input *dto.UpdateStateDto) (_ *model.State, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	state, resolveError := s.resolve(ctx, key)
	if resolveError != nil {
		return nil, resolveError
	}

	set := bson.M{}
	if input.State != nil && *input.State != "" {
		newSlug := slugify.Make(*input.State)
		if newSlug != state.State {
			exists, existsError := s.stateRepo.ExistsBySlug(ctx, newSlug, &state.ID)
			if existsError != nil {
				return nil, cErr.DatabaseError(existsError.Error())
			}
			if exists {
				return nil, cErr.Conflict("state already exists: " + newSlug)
			}
			set["state"] = newSlug
		}
	}
	if input.DisplayState != nil {
		displayState := strings.TrimSpace(*input.DisplayState)
		if displayState != "" && !strings.EqualFold(displayState, state.DisplayState) {
			nameTaken, nameError := s.stateRepo.Exists(ctx, displayStateConflictFilter(displayState, &state.ID))
			if nameError != nil {
				return nil, cErr.DatabaseError(nameError.Error())
			}
			if nameTaken {
				return nil, cErr.Conflict("state display name already exists: " + displayState)
			}
		}
		set["displayState"] = displayState
	}
	if input.Country != nil {
		set["country"] = *input.Country
	}
	if input.Enabled != nil {
		set["enabled"] = *input.Enabled
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}
	if len(set) == 0 {
		return state, nil
	}

	if _, updateError := s.stateRepo.UpdateByID(ctx, state.ID, bson.M{"$set": set}); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("state not found")
		}
		if mongo.IsDuplicateKeyError(updateError) {
			return nil, cErr.Conflict("state slug already in use")
		}
		return nil, cErr.DatabaseError(updateError.Error())
	}

	updated, getError := s.stateRepo.GetByID(ctx, state.ID)
	if getError != nil {
		return nil, cErr.DatabaseError(getError.Error())
	}
	return updated, nil
}

// buildStateListFilter 關鍵字同時比對 displayState 與 state slug
func buildStateListFilter(enabled *bool, search string) bson.M {
	filter := bson.M{}
	if enabled != nil {
		filter["enabled"] = *enabled
	}
	if search != "" {
		pattern := bson.M{"$regex": regexEscape(search), "$options": "i"}
		filter["$or"] = []bson.M{
			{"displayState": pattern},
			{"state": pattern},
		}
	}
	return filter
}

// displayStateConflictFilter 顯示名稱唯一性條件：整字比對、不分大小寫
func displayStateConflictFilter(displayState string, excludeID *primitive.ObjectID) bson.M {
	filter := bson.M{"displayState": bson.M{
		"$regex":   "^" + regexEscape(displayState) + "$",
		"$options": "i",
	}}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	return filter
}

// Delete 硬刪除；不 cascade，城市端懸掛參照由讀取端寬鬆解析
func (s *StateService) Delete(ctx context.Context, key string) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	state, resolveError := s.resolve(ctx, key)
	if resolveError != nil {
		return resolveError
	}
	if deleteError := s.stateRepo.DeleteByID(ctx, state.ID); deleteError != nil {
		return cErr.DatabaseError(deleteError.Error())
	}
	s.logger.Info("state deleted", zap.String("state", state.State))
	return nil
}

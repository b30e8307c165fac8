package service

import (
	"context"
	"strings"

	"uptown/internal/database/mongodb/model"
	mongoDb "uptown/internal/database/mongodb/repository"
	"uptown/internal/dto"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/service/cloudinary"
	"uptown/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ColivingPlanService struct {
	trace            *telemetry.Trace
	colivingPlanRepo *mongoDb.ColivingPlanRepository
	cloudinary       cloudinary.Service
	logger           *zap.Logger
}

func NewColivingPlanService(
	trace *telemetry.Trace,
	colivingPlanRepo *mongoDb.ColivingPlanRepository,
	cloudinaryService cloudinary.Service,
	logger *zap.Logger,
) *ColivingPlanService {
	return &ColivingPlanService{
		trace:            trace,
		colivingPlanRepo: colivingPlanRepo,
		cloudinary:       cloudinaryService,
		logger:           logger,
	}
}

// Create 建立方案類型；示意圖可選
func (s *ColivingPlanService) Create(ctx context.Context, planType, description string, image *cloudinary.UploadInput) (_ *model.ColivingPlan, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	planType = strings.TrimSpace(planType)
	if planType == "" {
		return nil, cErr.ValidateErr("type is required")
	}

	plan := &model.ColivingPlan{
		Type:        planType,
		Description: description,
		Enabled:     true,
	}
	if image != nil {
		result, uploadError := s.cloudinary.Upload(ctx, image)
		if uploadError != nil {
			return nil, uploadError
		}
		plan.Image = assetFromUpload(result)
	}

	created, createError := s.colivingPlanRepo.Create(ctx, plan)
	if createError != nil {
		return nil, cErr.DatabaseError(createError.Error())
	}
	return created, nil
}

func (s *ColivingPlanService) GetByID(ctx context.Context, planID primitive.ObjectID) (_ *model.ColivingPlan, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	plan, getError := s.colivingPlanRepo.GetByID(ctx, planID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("coliving plan not found")
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	return plan, nil
}

// List 預設僅回 enabled 且未刪除；all=true 回全部未刪除
func (s *ColivingPlanService) List(ctx context.Context, all bool) (_ []*model.ColivingPlan, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	filter := bson.M{"isDeleted": false}
	if !all {
		filter["enabled"] = true
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	plans, listError := s.colivingPlanRepo.List(ctx, filter, findOptions)
	if listError != nil {
		return nil, cErr.DatabaseError(listError.Error())
	}
	if plans == nil {
		plans = []*model.ColivingPlan{}
	}
	return plans, nil
}

// Update 更新欄位；新示意圖會先銷毀舊資產（盡力而為）再換新
func (s *ColivingPlanService) Update(ctx context.Context, planID primitive.ObjectID, input *dto.UpdateColivingPlanDto, image *cloudinary.UploadInput) (_ *model.ColivingPlan, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	plan, getError := s.colivingPlanRepo.GetByID(ctx, planID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("coliving plan not found")
		}
		return nil, cErr.DatabaseError(getError.Error())
	}

	set := bson.M{}
	if input.Type != nil {
		if strings.TrimSpace(*input.Type) == "" {
			return nil, cErr.ValidateErr("type cannot be empty")
		}
		set["type"] = strings.TrimSpace(*input.Type)
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Enabled != nil {
		set["enabled"] = *input.Enabled
	}
	if image != nil {
		result, uploadError := s.cloudinary.Upload(ctx, image)
		if uploadError != nil {
			return nil, uploadError
		}
		if plan.Image != nil && plan.Image.PublicID != "" {
			if destroyError := s.cloudinary.Destroy(ctx, plan.Image.PublicID); destroyError != nil {
				s.logger.Warn("cloudinary destroy failed",
					zap.String("publicId", plan.Image.PublicID),
					zap.Error(destroyError))
			}
		}
		set["image"] = assetFromUpload(result)
	}
	if len(set) == 0 {
		return plan, nil
	}

	if _, updateError := s.colivingPlanRepo.UpdateByID(ctx, planID, bson.M{"$set": set}); updateError != nil {
		return nil, cErr.DatabaseError(updateError.Error())
	}

	updated, getError := s.colivingPlanRepo.GetByID(ctx, planID)
	if getError != nil {
		return nil, cErr.DatabaseError(getError.Error())
	}
	return updated, nil
}

func (s *ColivingPlanService) SetEnabled(ctx context.Context, planID primitive.ObjectID, enabled bool) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	update := bson.M{"$set": bson.M{"enabled": enabled}}
	if _, updateError := s.colivingPlanRepo.UpdateByID(ctx, planID, update); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return cErr.NotFound("coliving plan not found")
		}
		return cErr.DatabaseError(updateError.Error())
	}
	return nil
}

// SoftDelete 標記刪除並停用；示意圖資產保留
func (s *ColivingPlanService) SoftDelete(ctx context.Context, planID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	update := bson.M{"$set": bson.M{"isDeleted": true, "enabled": false}}
	if _, updateError := s.colivingPlanRepo.UpdateByID(ctx, planID, update); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return cErr.NotFound("coliving plan not found")
		}
		return cErr.DatabaseError(updateError.Error())
	}
	return nil
}

// HardDelete 銷毀示意圖資產（盡力而為）後移除文件
func (s *ColivingPlanService) HardDelete(ctx context.Context, planID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	plan, getError := s.colivingPlanRepo.GetByID(ctx, planID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return cErr.NotFound("coliving plan not found")
		}
		return cErr.DatabaseError(getError.Error())
	}

	if plan.Image != nil && plan.Image.PublicID != "" {
		if destroyError := s.cloudinary.Destroy(ctx, plan.Image.PublicID); destroyError != nil {
			s.logger.Warn("cloudinary destroy failed",
				zap.String("publicId", plan.Image.PublicID),
				zap.Error(destroyError))
		}
	}

	if deleteError := s.colivingPlanRepo.DeleteByID(ctx, planID); deleteError != nil {
		return cErr.DatabaseError(deleteError.Error())
	}
	return nil
}

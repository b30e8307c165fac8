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

type AmenityService struct {
	trace       *telemetry.Trace
	amenityRepo *mongoDb.AmenityRepository
	cloudinary  cloudinary.Service
	logger      *zap.Logger
}

func NewAmenityService(
	trace *telemetry.Trace,
	amenityRepo *mongoDb.AmenityRepository,
	cloudinaryService cloudinary.Service,
	logger *zap.Logger,
) *AmenityService {
	return &AmenityService{
		trace:       trace,
		amenityRepo: amenityRepo,
		cloudinary:  cloudinaryService,
		logger:      logger,
	}
}

// Create 建立設施；icon 檔案可選
func (s *AmenityService) Create(ctx context.Context, name string, icon *cloudinary.UploadInput) (_ *model.Amenity, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, cErr.ValidateErr("name is required")
	}

	amenity := &model.Amenity{Name: name, Enabled: true}
	if icon != nil {
		result, uploadError := s.cloudinary.Upload(ctx, icon)
		if uploadError != nil {
			return nil, uploadError
		}
		amenity.Icon = assetFromUpload(result)
	}

	created, createError := s.amenityRepo.Create(ctx, amenity)
	if createError != nil {
		return nil, cErr.DatabaseError(createError.Error())
	}
	return created, nil
}

func (s *AmenityService) GetByID(ctx context.Context, amenityID primitive.ObjectID) (_ *model.Amenity, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	amenity, getError := s.amenityRepo.GetByID(ctx, amenityID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("amenity not found")
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	return amenity, nil
}

// List 預設僅回 enabled 且未刪除；all=true 回全部未刪除
func (s *AmenityService) List(ctx context.Context, all bool) (_ []*model.Amenity, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	filter := bson.M{"isDeleted": false}
	if !all {
		filter["enabled"] = true
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	amenities, listError := s.amenityRepo.List(ctx, filter, findOptions)
	if listError != nil {
		return nil, cErr.DatabaseError(listError.Error())
	}
	if amenities == nil {
		amenities = []*model.Amenity{}
	}
	return amenities, nil
}

// Update 更新欄位；新 icon 會先銷毀舊資產（盡力而為）再換新
func (s *AmenityService) Update(ctx context.Context, amenityID primitive.ObjectID, input *dto.UpdateAmenityDto, icon *cloudinary.UploadInput) (_ *model.Amenity, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	amenity, getError := s.amenityRepo.GetByID(ctx, amenityID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("amenity not found")
		}
		return nil, cErr.DatabaseError(getError.Error())
	}

	set := bson.M{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, cErr.ValidateErr("name cannot be empty")
		}
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Enabled != nil {
		set["enabled"] = *input.Enabled
	}
	if icon != nil {
		result, uploadError := s.cloudinary.Upload(ctx, icon)
		if uploadError != nil {
			return nil, uploadError
		}
		if amenity.Icon != nil && amenity.Icon.PublicID != "" {
			if destroyError := s.cloudinary.Destroy(ctx, amenity.Icon.PublicID); destroyError != nil {
				s.logger.Warn("cloudinary destroy failed",
					zap.String("publicId", amenity.Icon.PublicID),
					zap.Error(destroyError))
			}
		}
		set["icon"] = assetFromUpload(result)
	}
	if len(set) == 0 {
		return amenity, nil
	}

	if _, updateError := s.amenityRepo.UpdateByID(ctx, amenityID, bson.M{"$set": set}); updateError != nil {
		return nil, cErr.DatabaseError(updateError.Error())
	}

	updated, getError := s.amenityRepo.GetByID(ctx, amenityID)
	if getError != nil {
		return nil, cErr.DatabaseError(getError.Error())
	}
	return updated, nil
}

func (s *AmenityService) SetEnabled(ctx context.Context, amenityID primitive.ObjectID, enabled bool) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	update := bson.M{"$set": bson.M{"enabled": enabled}}
	if _, updateError := s.amenityRepo.UpdateByID(ctx, amenityID, update); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return cErr.NotFound("amenity not found")
		}
		return cErr.DatabaseError(updateError.Error())
	}
	return nil
}

// SoftDelete 標記刪除並停用；icon 資產保留
func (s *AmenityService) SoftDelete(ctx context.Context, amenityID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	update := bson.M{"$set": bson.M{"isDeleted": true, "enabled": false}}
	if _, updateError := s.amenityRepo.UpdateByID(ctx, amenityID, update); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return cErr.NotFound("amenity not found")
		}
		return cErr.DatabaseError(updateError.Error())
	}
	return nil
}

// HardDelete 銷毀 icon 資產（盡力而為）後移除文件
func (s *AmenityService) HardDelete(ctx context.Context, amenityID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	amenity, getError := s.amenityRepo.GetByID(ctx, amenityID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return cErr.NotFound("amenity not found")
		}
		return cErr.DatabaseError(getError.Error())
	}

	if amenity.Icon != nil && amenity.Icon.PublicID != "" {
		if destroyError := s.cloudinary.Destroy(ctx, amenity.Icon.PublicID); destroyError != nil {
			s.logger.Warn("cloudinary destroy failed",
				zap.String("publicId", amenity.Icon.PublicID),
				zap.Error(destroyError))
		}
	}

	if deleteError := s.amenityRepo.DeleteByID(ctx, amenityID); deleteError != nil {
		return cErr.DatabaseError(deleteError.Error())
	}
	return nil
}

func assetFromUpload(result *cloudinary.UploadResult) *model.ImageAsset {
	return &model.ImageAsset{
		PublicID:  result.PublicID,
		SecureURL: result.SecureURL,
		Bytes:     result.Bytes,
		Format:    result.Format,
		Width:     result.Width,
		Height:    result.Height,
	}
}

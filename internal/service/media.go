package service

import (
	"context"

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

type MediaService struct {
	trace         *telemetry.Trace
	mediaFileRepo *mongoDb.MediaFileRepository
	cloudinary    cloudinary.Service
	logger        *zap.Logger
}

func NewMediaService(
	trace *telemetry.Trace,
	mediaFileRepo *mongoDb.MediaFileRepository,
	cloudinaryService cloudinary.Service,
	logger *zap.Logger,
) *MediaService {
	return &MediaService{
		trace:         trace,
		mediaFileRepo: mediaFileRepo,
		cloudinary:    cloudinaryService,
		logger:        logger,
	}
}

// Upload 上傳多個檔案進媒體庫；單檔失敗不中斷其餘檔案，回傳成功清單
func (s *MediaService) Upload(ctx context.Context, files []*cloudinary.UploadInput, alts []string) (_ []*model.MediaFile, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if len(files) == 0 {
		return nil, cErr.ValidateErr("no files provided")
	}

	created := make([]*model.MediaFile, 0, len(files))
	for index, file := range files {
		result, uploadError := s.cloudinary.Upload(ctx, file)
		if uploadError != nil {
			s.logger.Warn("media upload failed",
				zap.String("filename", file.Filename),
				zap.Error(uploadError))
			continue
		}

		mediaFile := &model.MediaFile{
			URL:              result.SecureURL,
			PublicID:         result.PublicID,
			ResourceType:     result.ResourceType,
			OriginalFilename: file.Filename,
			Width:            result.Width,
			Height:           result.Height,
		}
		if index < len(alts) {
			mediaFile.Alt = alts[index]
		}

		saved, createError := s.mediaFileRepo.Create(ctx, mediaFile)
		if createError != nil {
			// 資料庫寫入失敗時回收圖床資產
			if destroyError := s.cloudinary.Destroy(ctx, result.PublicID); destroyError != nil {
				s.logger.Warn("cloudinary destroy failed",
					zap.String("publicId", result.PublicID),
					zap.Error(destroyError))
			}
			s.logger.Warn("media record create failed", zap.Error(createError))
			continue
		}
		created = append(created, saved)
	}

	if len(created) == 0 {
		return nil, cErr.ExternalRequestError("all uploads failed")
	}
	return created, nil
}

// List 依 resource_type 篩選；優先項目在前，其餘按建立時間新到舊
func (s *MediaService) List(ctx context.Context, resourceType string, page, limit int64) (_ []*model.MediaFile, totalCount int64, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	filter := bson.M{}
	if resourceType != "" {
		filter["resource_type"] = resourceType
	}

	totalCount, countError := s.mediaFileRepo.Count(ctx, filter)
	if countError != nil {
		return nil, 0, cErr.DatabaseError(countError.Error())
	}

	findOptions := options.Find().SetSort(bson.D{
		{Key: "isPriority", Value: -1},
		{Key: "priorityOrder", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	if limit > 0 {
		findOptions.SetLimit(limit)
		if page > 1 {
			findOptions.SetSkip((page - 1) * limit)
		}
	}

	mediaFiles, listError := s.mediaFileRepo.List(ctx, filter, findOptions)
	if listError != nil {
		return nil, 0, cErr.DatabaseError(listError.Error())
	}
	if mediaFiles == nil {
		mediaFiles = []*model.MediaFile{}
	}
	return mediaFiles, totalCount, nil
}

func (s *MediaService) Update(ctx context.Context, mediaFileID primitive.ObjectID, input *dto.UpdateMediaFileDto) (_ *model.MediaFile, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	set := bson.M{}
	if input.Alt != nil {
		set["alt"] = *input.Alt
	}
	if input.IsPriority != nil {
		set["isPriority"] = *input.IsPriority
	}
	if input.PriorityOrder != nil {
		set["priorityOrder"] = *input.PriorityOrder
	}
	if len(set) == 0 {
		return nil, cErr.ValidateErr("no fields provided")
	}

	if _, updateError := s.mediaFileRepo.UpdateByID(ctx, mediaFileID, bson.M{"$set": set}); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("media file not found")
		}
		return nil, cErr.DatabaseError(updateError.Error())
	}

	updated, getError := s.mediaFileRepo.GetByID(ctx, mediaFileID)
	if getError != nil {
		return nil, cErr.DatabaseError(getError.Error())
	}
	return updated, nil
}

// Delete 銷毀圖床資產（盡力而為）後移除文件
func (s *MediaService) Delete(ctx context.Context, mediaFileID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	mediaFile, getError := s.mediaFileRepo.GetByID(ctx, mediaFileID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return cErr.NotFound("media file not found")
		}
		return cErr.DatabaseError(getError.Error())
	}

	if destroyError := s.cloudinary.Destroy(ctx, mediaFile.PublicID); destroyError != nil {
		s.logger.Warn("cloudinary destroy failed",
			zap.String("publicId", mediaFile.PublicID),
			zap.Error(destroyError))
	}

	if deleteError := s.mediaFileRepo.DeleteByID(ctx, mediaFileID); deleteError != nil {
		if deleteError == mongo.ErrNoDocuments {
			return cErr.NotFound("media file not found")
		}
		return cErr.DatabaseError(deleteError.Error())
	}
	return nil
}

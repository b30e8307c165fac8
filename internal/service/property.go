package service

import (
	"context"
	"sort"
	"strings"

	"uptown/internal/core"
	"uptown/internal/database/mongodb/model"
	mongoDb "uptown/internal/database/mongodb/repository"
	"uptown/internal/dto"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/service/cloudinary"
	"uptown/internal/telemetry"
	"uptown/utils/slugify"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type PropertyService struct {
	trace             *telemetry.Trace
	propertyRepo      *mongoDb.PropertyRepository
	cityRepo          *mongoDb.CityContentRepository
	microlocationRepo *mongoDb.MicrolocationRepository
	amenityRepo       *mongoDb.AmenityRepository
	colivingPlanRepo  *mongoDb.ColivingPlanRepository
	cloudinary        cloudinary.Service
	logger            *zap.Logger
}

func NewPropertyService(
	trace *telemetry.Trace,
	propertyRepo *mongoDb.PropertyRepository,
	cityRepo *mongoDb.CityContentRepository,
	microlocationRepo *mongoDb.MicrolocationRepository,
	amenityRepo *mongoDb.AmenityRepository,
	colivingPlanRepo *mongoDb.ColivingPlanRepository,
	cloudinaryService cloudinary.Service,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		trace:             trace,
		propertyRepo:      propertyRepo,
		cityRepo:          cityRepo,
		microlocationRepo: microlocationRepo,
		amenityRepo:       amenityRepo,
		colivingPlanRepo:  colivingPlanRepo,
		cloudinary:        cloudinaryService,
		logger:            logger,
	}
}

// ListPropertiesQuery 列表查詢條件；All=true 解除「僅 approved」限制（仍排除已刪除）
type ListPropertiesQuery struct {
	City          string
	Microlocation string
	Status        string
	Search        string
	Featured      *bool
	Verified      *bool
	All           bool
	Page          int64
	Limit         int64
}

// Create 建立物件。slug 未給時由 name 產生；圖片依上傳順序從 0 開始編號。
func (s *PropertyService) Create(ctx context.Context, form *dto.PropertyFormDto, files []*cloudinary.UploadInput) (_ *dto.PropertyResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if form.Name == nil || strings.TrimSpace(*form.Name) == "" {
		return nil, cErr.ValidateErr("name is required")
	}

	slugValue := ""
	if form.Slug != nil && *form.Slug != "" {
		slugValue = slugify.Make(*form.Slug)
	} else {
		slugValue = slugify.Make(*form.Name)
	}
	if slugValue == "" {
		return nil, cErr.ValidateErr("cannot derive slug from name")
	}

	exists, existsError := s.propertyRepo.ExistsBySlug(ctx, slugValue, nil)
	if existsError != nil {
		return nil, cErr.DatabaseError(existsError.Error())
	}
	if exists {
		return nil, cErr.Conflict("slug already in use: " + slugValue)
	}

	property := &model.Property{
		Name:   strings.TrimSpace(*form.Name),
		Slug:   slugValue,
		Status: string(core.PropertyStatusPending),
		Tags:   []string{},
		Images: []model.PropertyImage{},
		Location: model.PropertyLocation{
			MicroLocations: []primitive.ObjectID{},
			NearbyPlaces:   []model.NearbyPlace{},
		},
		Amenities:     []primitive.ObjectID{},
		ColivingPlans: []model.PlanPrice{},
	}

	if applyError := s.applyForm(property, form); applyError != nil {
		return nil, applyError
	}

	// 圖片上傳；建立時任一張失敗整個請求失敗
	for index, file := range files {
		result, uploadError := s.cloudinary.Upload(ctx, file)
		if uploadError != nil {
			return nil, uploadError
		}
		image := imageFromUpload(result, len(property.Images))
		if index < len(form.ImageAlts) {
			image.Alt = form.ImageAlts[index]
		}
		property.Images = append(property.Images, image)
	}

	property.StartingPrice = computeStartingPrice(form.StartingPrice, property.ColivingPlans)

	created, createError := s.propertyRepo.Create(ctx, property)
	if createError != nil {
		if mongo.IsDuplicateKeyError(createError) {
			return nil, cErr.Conflict("slug already in use: " + slugValue)
		}
		return nil, cErr.DatabaseError(createError.Error())
	}

	s.logger.Info("property created",
		zap.String("id", created.ID.Hex()),
		zap.String("slug", created.Slug))

	return s.hydrateOne(ctx, created)
}

// Update 部分更新。僅處理表單出現的欄位；新圖片接續既有最大 order 編號。
func (s *PropertyService) Update(ctx context.Context, propertyID primitive.ObjectID, form *dto.PropertyFormDto, files []*cloudinary.UploadInput) (_ *dto.PropertyResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	property, getError := s.propertyRepo.GetByID(ctx, propertyID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("property not found")
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	if property.IsDeleted {
		return nil, cErr.NotFound("property not found")
	}

	if form.Name != nil {
		if strings.TrimSpace(*form.Name) == "" {
			return nil, cErr.ValidateErr("name cannot be empty")
		}
		property.Name = strings.TrimSpace(*form.Name)
	}
	// slug 僅在明確給定時變更
	if form.Slug != nil && *form.Slug != "" {
		newSlug := slugify.Make(*form.Slug)
		if newSlug != property.Slug {
			exists, existsError := s.propertyRepo.ExistsBySlug(ctx, newSlug, &property.ID)
			if existsError != nil {
				return nil, cErr.DatabaseError(existsError.Error())
			}
			if exists {
				return nil, cErr.Conflict("slug already in use: " + newSlug)
			}
			property.Slug = newSlug
		}
	}

	if applyError := s.applyForm(property, form); applyError != nil {
		return nil, applyError
	}

	for index, file := range files {
		result, uploadError := s.cloudinary.Upload(ctx, file)
		if uploadError != nil {
			return nil, uploadError
		}
		image := imageFromUpload(result, nextImageOrder(property.Images))
		if index < len(form.ImageAlts) {
			image.Alt = form.ImageAlts[index]
		}
		property.Images = append(property.Images, image)
	}

	// 價格或方案被動到才重算，避免覆蓋既有的明確定價
	if form.StartingPrice != nil || form.ColivingPlans != nil {
		property.StartingPrice = computeStartingPrice(form.StartingPrice, property.ColivingPlans)
	}

	update := bson.M{"$set": bson.M{
		"name":                  property.Name,
		"slug":                  property.Slug,
		"description":           property.Description,
		"tags":                  property.Tags,
		"images":                property.Images,
		"space_contact_details": property.SpaceContactDetails,
		"location":              property.Location,
		"amenities":             property.Amenities,
		"coliving_plans":        property.ColivingPlans,
		"startingPrice":         property.StartingPrice,
		"rating":                property.Rating,
		"reviewCount":           property.ReviewCount,
		"seo":                   property.Seo,
		"other_detail":          property.OtherDetail,
		"space_type":            property.SpaceType,
		"status":                property.Status,
		"featured":              property.Featured,
		"verified":              property.Verified,
	}}
	if _, updateError := s.propertyRepo.UpdateOneFiltered(ctx, bson.M{"_id": property.ID, "isDeleted": false}, update); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("property not found")
		}
		if mongo.IsDuplicateKeyError(updateError) {
			return nil, cErr.Conflict("slug already in use: " + property.Slug)
		}
		return nil, cErr.DatabaseError(updateError.Error())
	}

	return s.hydrateOne(ctx, property)
}

// applyForm 套用表單欄位到 model；hex 格式錯誤回 InvalidReference
func (s *PropertyService) applyForm(property *model.Property, form *dto.PropertyFormDto) error {
	if form.Description != nil {
		property.Description = *form.Description
	}
	if form.Tags != nil {
		property.Tags = form.Tags
	}
	if form.SpaceContactDetails != nil {
		property.SpaceContactDetails = *form.SpaceContactDetails
	}
	if form.Location != nil {
		location, locationError := locationFromDto(form.Location)
		if locationError != nil {
			return locationError
		}
		property.Location = *location
	}
	if form.Amenities != nil {
		amenityIDs, parseError := parseObjectIDs(form.Amenities, "amenities")
		if parseError != nil {
			return parseError
		}
		property.Amenities = amenityIDs
	}
	if form.ColivingPlans != nil {
		plans, planError := plansFromDto(form.ColivingPlans)
		if planError != nil {
			return planError
		}
		property.ColivingPlans = plans
	}
	if form.Rating != nil {
		property.Rating = *form.Rating
	}
	if form.ReviewCount != nil {
		property.ReviewCount = *form.ReviewCount
	}
	if form.Seo != nil {
		property.Seo = *form.Seo
	}
	if form.OtherDetail != nil {
		property.OtherDetail = *form.OtherDetail
	}
	if form.SpaceType != nil {
		property.SpaceType = *form.SpaceType
	}
	if form.Status != nil {
		if !core.IsValidPropertyStatus(*form.Status) {
			return cErr.InvalidStatus("invalid status: " + *form.Status)
		}
		property.Status = *form.Status
	}
	if form.Featured != nil {
		property.Featured = *form.Featured
	}
	if form.Verified != nil {
		property.Verified = *form.Verified
	}
	return nil
}

// GetByID 取單筆（含已軟刪除，供後台使用）
func (s *PropertyService) GetByID(ctx context.Context, propertyID primitive.ObjectID) (_ *dto.PropertyResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	property, getError := s.propertyRepo.GetByID(ctx, propertyID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("property not found")
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	return s.hydrateOne(ctx, property)
}

// GetBySlug 取單筆（僅未刪除）
func (s *PropertyService) GetBySlug(ctx context.Context, slugValue string) (_ *dto.PropertyResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	property, getError := s.propertyRepo.GetBySlug(ctx, slugValue)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return nil, cErr.NotFound("property not found")
		}
		return nil, cErr.DatabaseError(getError.Error())
	}
	return s.hydrateOne(ctx, property)
}

// List 條件列表；回傳符合總數與當頁解析後結果
func (s *PropertyService) List(ctx context.Context, query *ListPropertiesQuery) (_ []dto.PropertyResponseDto, totalCount int64, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	filter, filterError := buildListFilter(query)
	if filterError != nil {
		return nil, 0, filterError
	}

	totalCount, countError := s.propertyRepo.Count(ctx, filter)
	if countError != nil {
		return nil, 0, cErr.DatabaseError(countError.Error())
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if query.Limit > 0 {
		findOptions.SetLimit(query.Limit)
		if query.Page > 1 {
			findOptions.SetSkip((query.Page - 1) * query.Limit)
		}
	}

	properties, listError := s.propertyRepo.List(ctx, filter, findOptions)
	if listError != nil {
		return nil, 0, cErr.DatabaseError(listError.Error())
	}

	results, hydrateError := s.hydrateMany(ctx, properties)
	if hydrateError != nil {
		return nil, 0, hydrateError
	}

	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		City:        query.City,
		Status:      query.Status,
		Search:      query.Search,
		ResultCount: len(results),
	})
	return results, totalCount, nil
}

// SetStatus 僅允許五個固定狀態值
func (s *PropertyService) SetStatus(ctx context.Context, propertyID primitive.ObjectID, status string) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if !core.IsValidPropertyStatus(status) {
		return cErr.InvalidStatus("invalid status: " + status)
	}
	return s.updateGuarded(ctx, propertyID, bson.M{"$set": bson.M{"status": status}})
}

func (s *PropertyService) SetFeatured(ctx context.Context, propertyID primitive.ObjectID, featured bool) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	return s.updateGuarded(ctx, propertyID, bson.M{"$set": bson.M{"featured": featured}})
}

// ReorderImages 依 id 對應 order 批次改寫；未知 id 靜默忽略
func (s *PropertyService) ReorderImages(ctx context.Context, propertyID primitive.ObjectID, orders []dto.ImageOrderDto) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	property, getError := s.propertyRepo.GetByID(ctx, propertyID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return cErr.NotFound("property not found")
		}
		return cErr.DatabaseError(getError.Error())
	}
	if property.IsDeleted {
		return cErr.NotFound("property not found")
	}

	orderByID := make(map[string]int, len(orders))
	for _, item := range orders {
		if item.Order == nil {
			continue
		}
		orderByID[item.ID] = int(*item.Order)
	}

	reordered := applyImageOrder(property.Images, orderByID)
	return s.updateGuarded(ctx, propertyID, bson.M{"$set": bson.M{"images": reordered}})
}

// RemoveImage 移除單張相簿圖片；圖床銷毀失敗不阻擋資料庫移除
func (s *PropertyService) RemoveImage(ctx context.Context, propertyID, imageID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	property, getError := s.propertyRepo.GetByID(ctx, propertyID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return cErr.NotFound("property not found")
		}
		return cErr.DatabaseError(getError.Error())
	}
	if property.IsDeleted {
		return cErr.NotFound("property not found")
	}

	found := false
	remaining := make([]model.PropertyImage, 0, len(property.Images))
	for _, image := range property.Images {
		if image.ID == imageID {
			found = true
			if destroyError := s.cloudinary.Destroy(ctx, image.PublicID); destroyError != nil {
				s.logger.Warn("cloudinary destroy failed",
					zap.String("publicId", image.PublicID),
					zap.Error(destroyError))
			}
			continue
		}
		remaining = append(remaining, image)
	}
	if !found {
		return cErr.NotFound("image not found")
	}

	return s.updateGuarded(ctx, propertyID, bson.M{"$set": bson.M{"images": remaining}})
}

// SoftDelete 標記刪除並轉為 archived；文件與圖床資產保留
func (s *PropertyService) SoftDelete(ctx context.Context, propertyID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	update := bson.M{"$set": bson.M{
		"isDeleted": true,
		"status":    string(core.PropertyStatusArchived),
	}}
	if _, updateError := s.propertyRepo.UpdateByID(ctx, propertyID, update); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return cErr.NotFound("property not found")
		}
		return cErr.DatabaseError(updateError.Error())
	}
	return nil
}

// HardDelete 銷毀所有圖床資產（盡力而為）後移除文件
func (s *PropertyService) HardDelete(ctx context.Context, propertyID primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	property, getError := s.propertyRepo.GetByID(ctx, propertyID)
	if getError != nil {
		if getError == mongo.ErrNoDocuments {
			return cErr.NotFound("property not found")
		}
		return cErr.DatabaseError(getError.Error())
	}

	for _, image := range property.Images {
		if destroyError := s.cloudinary.Destroy(ctx, image.PublicID); destroyError != nil {
			s.logger.Warn("cloudinary destroy failed",
				zap.String("publicId", image.PublicID),
				zap.Error(destroyError))
		}
	}

	if deleteError := s.propertyRepo.DeleteByID(ctx, propertyID); deleteError != nil {
		return cErr.DatabaseError(deleteError.Error())
	}

	s.logger.Info("property hard deleted", zap.String("id", propertyID.Hex()))
	return nil
}

// ReconcileStartingPrices 夜間校正：重算所有未刪除物件的 startingPrice
func (s *PropertyService) ReconcileStartingPrices(ctx context.Context) (updatedCount int, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	properties, listError := s.propertyRepo.List(ctx, bson.M{"isDeleted": false})
	if listError != nil {
		return 0, cErr.DatabaseError(listError.Error())
	}

	// 只補漏（startingPrice 為 0），不覆蓋明確定價
	for _, property := range properties {
		if property.StartingPrice > 0 {
			continue
		}
		expected := computeStartingPrice(nil, property.ColivingPlans)
		if expected == 0 {
			continue
		}
		update := bson.M{"$set": bson.M{"startingPrice": expected}}
		if _, updateError := s.propertyRepo.UpdateByID(ctx, property.ID, update); updateError != nil {
			s.logger.Warn("starting price reconcile failed",
				zap.String("id", property.ID.Hex()),
				zap.Error(updateError))
			continue
		}
		updatedCount++
	}
	return updatedCount, nil
}

func (s *PropertyService) updateGuarded(ctx context.Context, propertyID primitive.ObjectID, update bson.M) error {
	if _, updateError := s.propertyRepo.UpdateOneFiltered(ctx, bson.M{"_id": propertyID, "isDeleted": false}, update); updateError != nil {
		if updateError == mongo.ErrNoDocuments {
			return cErr.NotFound("property not found")
		}
		return cErr.DatabaseError(updateError.Error())
	}
	return nil
}

// ===== 純函式（無 I/O）=====

// computeStartingPrice 明確給定且 > 0 時採用；否則取方案最低價
func computeStartingPrice(explicit *float64, plans []model.PlanPrice) float64 {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}
	lowest := 0.0
	for _, plan := range plans {
		if plan.Price <= 0 {
			continue
		}
		if lowest == 0 || plan.Price < lowest {
			lowest = plan.Price
		}
	}
	return lowest
}

// nextImageOrder 新圖片編號 = 既有最大 order + 1；空相簿從 0 起算
func nextImageOrder(images []model.PropertyImage) int {
	max := -1
	for _, image := range images {
		if image.Order > max {
			max = image.Order
		}
	}
	return max + 1
}

// applyImageOrder 套用新的 order 並依 order 升冪排序；未出現在 map 的圖片維持原 order
func applyImageOrder(images []model.PropertyImage, orderByID map[string]int) []model.PropertyImage {
	result := make([]model.PropertyImage, len(images))
	copy(result, images)
	for index := range result {
		if newOrder, ok := orderByID[result[index].ID.Hex()]; ok {
			result[index].Order = newOrder
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})
	return result
}

// buildListFilter 組合 Mongo 查詢條件；永遠排除已刪除
func buildListFilter(query *ListPropertiesQuery) (bson.M, error) {
	filter := bson.M{"isDeleted": false}
	if !query.All {
		filter["status"] = string(core.PropertyStatusApproved)
	} else if query.Status != "" {
		if !core.IsValidPropertyStatus(query.Status) {
			return nil, cErr.InvalidStatus("invalid status: " + query.Status)
		}
		filter["status"] = query.Status
	}
	if query.City != "" {
		cityID, parseError := primitive.ObjectIDFromHex(query.City)
		if parseError != nil {
			return nil, cErr.InvalidReference("invalid city id: " + query.City)
		}
		filter["location.city"] = cityID
	}
	if query.Microlocation != "" {
		microID, parseError := primitive.ObjectIDFromHex(query.Microlocation)
		if parseError != nil {
			return nil, cErr.InvalidReference("invalid microlocation id: " + query.Microlocation)
		}
		filter["location.micro_locations"] = microID
	}
	if query.Search != "" {
		filter["name"] = bson.M{"$regex": regexEscape(query.Search), "$options": "i"}
	}
	if query.Featured != nil {
		filter["featured"] = *query.Featured
	}
	if query.Verified != nil {
		filter["verified"] = *query.Verified
	}
	return filter, nil
}

var regexSpecials = `\.+*?()|[]{}^$`

func regexEscape(input string) string {
	var b strings.Builder
	for _, r := range input {
		if strings.ContainsRune(regexSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// locationFromDto hex 轉 ObjectID；格式錯誤回 InvalidReference（不驗證存在性）
func locationFromDto(input *dto.PropertyLocationDto) (*model.PropertyLocation, error) {
	location := &model.PropertyLocation{
		Address:        input.Address,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		State:          input.State,
		Country:        input.Country,
		LocationSlug:   input.LocationSlug,
		MetroDetail:    input.MetroDetail,
		MicroLocations: []primitive.ObjectID{},
		NearbyPlaces:   input.NearbyPlaces,
	}
	if location.NearbyPlaces == nil {
		location.NearbyPlaces = []model.NearbyPlace{}
	}
	if input.City != nil && *input.City != "" {
		cityID, parseError := primitive.ObjectIDFromHex(*input.City)
		if parseError != nil {
			return nil, cErr.InvalidReference("invalid city id: " + *input.City)
		}
		location.City = &cityID
	}
	microIDs, parseError := parseObjectIDs(input.MicroLocations, "micro_locations")
	if parseError != nil {
		return nil, parseError
	}
	location.MicroLocations = microIDs
	return location, nil
}

func plansFromDto(input []dto.PlanPriceDto) ([]model.PlanPrice, error) {
	plans := make([]model.PlanPrice, 0, len(input))
	for _, item := range input {
		plan := model.PlanPrice{
			Price:    item.Price,
			Duration: item.Duration,
		}
		if item.ID != "" {
			planItemID, parseError := primitive.ObjectIDFromHex(item.ID)
			if parseError != nil {
				return nil, cErr.InvalidReference("invalid plan item id: " + item.ID)
			}
			plan.ID = planItemID
		} else {
			plan.ID = primitive.NewObjectID()
		}
		if item.Plan != "" {
			planTypeID, parseError := primitive.ObjectIDFromHex(item.Plan)
			if parseError != nil {
				return nil, cErr.InvalidReference("invalid plan id: " + item.Plan)
			}
			plan.Plan = planTypeID
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func parseObjectIDs(input []string, field string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(input))
	for _, hex := range input {
		if hex == "" {
			continue
		}
		id, parseError := primitive.ObjectIDFromHex(hex)
		if parseError != nil {
			return nil, cErr.InvalidReference("invalid " + field + " id: " + hex)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func imageFromUpload(result *cloudinary.UploadResult, order int) model.PropertyImage {
	return model.PropertyImage{
		ID:        primitive.NewObjectID(),
		PublicID:  result.PublicID,
		SecureURL: result.SecureURL,
		Bytes:     result.Bytes,
		Format:    result.Format,
		Width:     result.Width,
		Height:    result.Height,
		Order:     order,
	}
}

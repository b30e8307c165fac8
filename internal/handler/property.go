package handler

import (
	"uptown/internal/core"
	"uptown/internal/dto"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/pkg/response"
	"uptown/internal/service"
	"uptown/internal/telemetry"
	"uptown/utils/validate"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	trace           *telemetry.Trace
	propertyService *service.PropertyService
}

func NewPropertyHandler(trace *telemetry.Trace, propertyService *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{trace: trace, propertyService: propertyService}
}

// Create 建立物件
// @Summary 建立物件
// @Tags Property
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "名稱"
// @Param slug formData string false "slug（未給時由名稱產生）"
// @Param location formData string false "位置子文件（JSON 字串）"
// @Param images formData file false "相簿圖片（可多張）"
// @Success 201 {object} dto.PropertyResponseDto
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	form, field, parseError := dto.ParsePropertyForm(c)
	if parseError != nil {
		end(parseError)
		response.AbortWithError(c, cErr.ValidateErr("invalid JSON in field: "+field))
		return
	}

	files, readError := readUploadFiles(c, "images", core.AssetFolderProperties)
	if readError != nil {
		response.AbortWithError(c, readError)
		return
	}

	created, createError := h.propertyService.Create(ctx, form, files)
	if createError != nil {
		response.AbortWithError(c, createError)
		return
	}
	response.Create(c, created)
}

// List 物件列表
// @Summary 物件列表（預設僅 approved 且未刪除；all=true 解除狀態限制）
// @Tags Property
// @Produce json
// @Param city query string false "城市 id"
// @Param microlocation query string false "微區位 id"
// @Param status query string false "狀態（需搭配 all=true）"
// @Param search query string false "名稱關鍵字"
// @Param featured query bool false "精選"
// @Param verified query bool false "已驗證"
// @Param all query bool false "解除 approved 限制"
// @Param page query int false "頁碼"
// @Param limit query int false "每頁筆數"
// @Success 200 {array} dto.PropertyResponseDto
// @Router /api/properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	query := &service.ListPropertiesQuery{
		City:          c.Query("city"),
		Microlocation: c.Query("microlocation"),
		Status:        c.Query("status"),
		Search:        c.Query("search"),
	}

	if value, present, parseError := validate.GetBoolQuery(c, "featured"); parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid featured"))
		return
	} else if present {
		query.Featured = &value
	}
	if value, present, parseError := validate.GetBoolQuery(c, "verified"); parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid verified"))
		return
	} else if present {
		query.Verified = &value
	}
	if value, _, parseError := validate.GetBoolQuery(c, "all"); parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid all"))
		return
	} else {
		query.All = value
	}

	page, pageError := validate.GetInt64Query(c, "page", 1)
	if pageError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid page"))
		return
	}
	limit, limitError := validate.GetInt64Query(c, "limit", 20)
	if limitError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid limit"))
		return
	}
	query.Page, query.Limit = page, limit

	results, totalCount, listError := h.propertyService.List(ctx, query)
	if listError != nil {
		response.AbortWithError(c, listError)
		return
	}
	response.List(c, int(totalCount), results)
}

// GetByID 取單筆物件
// @Summary 以 id 取物件（含已軟刪除）
// @Tags Property
// @Security BearerAuth
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} dto.PropertyResponseDto
// @Failure 404 {object} map[string]string
// @Router /api/properties/{id} [get]
func (h *PropertyHandler) GetByID(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	propertyID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	result, getError := h.propertyService.GetByID(ctx, propertyID)
	if getError != nil {
		response.AbortWithError(c, getError)
		return
	}
	response.Success(c, result)
}

// GetBySlug 以 slug 取物件
// @Summary 以 slug 取物件（僅未刪除）
// @Tags Property
// @Produce json
// @Param slug path string true "Property slug"
// @Success 200 {object} dto.PropertyResponseDto
// @Failure 404 {object} map[string]string
// @Router /api/properties/slug/{slug} [get]
func (h *PropertyHandler) GetBySlug(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	result, getError := h.propertyService.GetBySlug(ctx, c.Param("slug"))
	if getError != nil {
		response.AbortWithError(c, getError)
		return
	}
	response.Success(c, result)
}

// Update 部分更新物件
// @Summary 更新物件（multipart；新圖片附加到相簿尾端）
// @Tags Property
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} dto.PropertyResponseDto
// @Failure 404 {object} map[string]string
// @Router /api/properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	propertyID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	form, field, parseError := dto.ParsePropertyForm(c)
	if parseError != nil {
		end(parseError)
		response.AbortWithError(c, cErr.ValidateErr("invalid JSON in field: "+field))
		return
	}

	files, readError := readUploadFiles(c, "images", core.AssetFolderProperties)
	if readError != nil {
		response.AbortWithError(c, readError)
		return
	}

	updated, updateError := h.propertyService.Update(ctx, propertyID, form, files)
	if updateError != nil {
		response.AbortWithError(c, updateError)
		return
	}
	response.Success(c, updated)
}

// SetStatus 變更狀態
// @Summary 變更物件狀態
// @Tags Property
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param body body dto.SetStatusDto true "狀態"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/properties/{id}/status [patch]
func (h *PropertyHandler) SetStatus(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	propertyID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var body dto.SetStatusDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.propertyService.SetStatus(ctx, propertyID, body.Status); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"status": body.Status})
}

// SetFeatured 設定精選
// @Summary 設定物件精選旗標
// @Tags Property
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param body body dto.SetFeaturedDto true "精選"
// @Success 200 {object} map[string]bool
// @Router /api/properties/{id}/feature [patch]
func (h *PropertyHandler) SetFeatured(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	propertyID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var body dto.SetFeaturedDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.propertyService.SetFeatured(ctx, propertyID, *body.Featured); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"featured": *body.Featured})
}

// ReorderImages 相簿重新排序
// @Summary 相簿重新排序（未知圖片 id 靜默忽略）
// @Tags Property
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param body body dto.ReorderImagesDto true "排序清單"
// @Success 200 {object} map[string]string
// @Router /api/properties/{id}/images/reorder [patch]
func (h *PropertyHandler) ReorderImages(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	propertyID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var body dto.ReorderImagesDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.propertyService.ReorderImages(ctx, propertyID, body.Images); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "images reordered"})
}

// RemoveImage 移除單張相簿圖片
// @Summary 移除相簿圖片（同步銷毀圖床資產，盡力而為）
// @Tags Property
// @Security BearerAuth
// @Produce json
// @Param id path string true "Property ID"
// @Param imageID path string true "Image ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/properties/{id}/images/{imageID} [delete]
func (h *PropertyHandler) RemoveImage(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	propertyID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	imageID, cause, respErr := validate.ParseObjectID(c, "imageID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.propertyService.RemoveImage(ctx, propertyID, imageID); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "image removed"})
}

// Delete 刪除物件
// @Summary 刪除物件；預設軟刪除，hard=true 連同圖床資產硬刪除
// @Tags Property
// @Security BearerAuth
// @Produce json
// @Param id path string true "Property ID"
// @Param hard query bool false "硬刪除"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	propertyID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	hard, _, parseError := validate.GetBoolQuery(c, "hard")
	if parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid hard"))
		return
	}

	var deleteError error
	if hard {
		deleteError = h.propertyService.HardDelete(ctx, propertyID)
	} else {
		deleteError = h.propertyService.SoftDelete(ctx, propertyID)
	}
	if deleteError != nil {
		response.AbortWithError(c, deleteError)
		return
	}
	response.Success(c, gin.H{"message": "property deleted"})
}

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

type AmenityHandler struct {
	trace          *telemetry.Trace
	amenityService *service.AmenityService
}

func NewAmenityHandler(trace *telemetry.Trace, amenityService *service.AmenityService) *AmenityHandler {
	return &AmenityHandler{trace: trace, amenityService: amenityService}
}

// Create 建立設施
// @Summary 建立設施（multipart；icon 檔案可選）
// @Tags Amenity
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "名稱"
// @Param icon formData file false "icon 檔案"
// @Success 201 {object} model.Amenity
// @Router /api/amenities [post]
func (h *AmenityHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	icon, readError := readSingleUploadFile(c, "icon", core.AssetFolderAmenities)
	if readError != nil {
		response.AbortWithError(c, readError)
		return
	}

	created, createError := h.amenityService.Create(ctx, c.PostForm("name"), icon)
	if createError != nil {
		response.AbortWithError(c, createError)
		return
	}
	response.Create(c, created)
}

// List 設施列表
// @Summary 設施列表（預設僅啟用；all=true 含停用）
// @Tags Amenity
// @Produce json
// @Param all query bool false "含停用"
// @Success 200 {array} model.Amenity
// @Router /api/amenities [get]
func (h *AmenityHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	all, _, parseError := validate.GetBoolQuery(c, "all")
	if parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid all"))
		return
	}

	amenities, listError := h.amenityService.List(ctx, all)
	if listError != nil {
		response.AbortWithError(c, listError)
		return
	}
	response.List(c, len(amenities), amenities)
}

// Get 取單筆設施
// @Summary 以 id 取設施
// @Tags Amenity
// @Produce json
// @Param id path string true "Amenity ID"
// @Success 200 {object} model.Amenity
// @Failure 404 {object} map[string]string
// @Router /api/amenities/{id} [get]
func (h *AmenityHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	amenityID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	amenity, getError := h.amenityService.GetByID(ctx, amenityID)
	if getError != nil {
		response.AbortWithError(c, getError)
		return
	}
	response.Success(c, amenity)
}

// Update 更新設施
// @Summary 更新設施（multipart；新 icon 會替換並銷毀舊資產）
// @Tags Amenity
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Amenity ID"
// @Success 200 {object} model.Amenity
// @Failure 404 {object} map[string]string
// @Router /api/amenities/{id} [put]
func (h *AmenityHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	amenityID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var body dto.UpdateAmenityDto
	if name, ok := c.GetPostForm("name"); ok {
		body.Name = &name
	}
	if value, present, parseError := validate.GetBoolPostForm(c, "enabled"); parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid enabled"))
		return
	} else if present {
		body.Enabled = &value
	}

	icon, readError := readSingleUploadFile(c, "icon", core.AssetFolderAmenities)
	if readError != nil {
		response.AbortWithError(c, readError)
		return
	}

	updated, updateError := h.amenityService.Update(ctx, amenityID, &body, icon)
	if updateError != nil {
		response.AbortWithError(c, updateError)
		return
	}
	response.Success(c, updated)
}

// SetEnabled 啟用/停用
// @Summary 設施啟用/停用
// @Tags Amenity
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Amenity ID"
// @Param body body dto.SetEnabledDto true "啟用旗標"
// @Success 200 {object} map[string]bool
// @Router /api/amenities/{id}/enable [patch]
func (h *AmenityHandler) SetEnabled(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	amenityID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var body dto.SetEnabledDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.amenityService.SetEnabled(ctx, amenityID, *body.Enabled); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"enabled": *body.Enabled})
}

// Delete 刪除設施
// @Summary 刪除設施；預設軟刪除，hard=true 連同 icon 資產硬刪除
// @Tags Amenity
// @Security BearerAuth
// @Produce json
// @Param id path string true "Amenity ID"
// @Param hard query bool false "硬刪除"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/amenities/{id} [delete]
func (h *AmenityHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	amenityID, cause, respErr := validate.ParseObjectID(c, "id")
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
		deleteError = h.amenityService.HardDelete(ctx, amenityID)
	} else {
		deleteError = h.amenityService.SoftDelete(ctx, amenityID)
	}
	if deleteError != nil {
		response.AbortWithError(c, deleteError)
		return
	}
	response.Success(c, gin.H{"message": "amenity deleted"})
}

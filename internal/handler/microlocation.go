package handler

import (
	"uptown/internal/dto"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/pkg/response"
	"uptown/internal/service"
	"uptown/internal/telemetry"
	"uptown/utils/validate"

	"github.com/gin-gonic/gin"
)

type MicrolocationHandler struct {
	trace                *telemetry.Trace
	microlocationService *service.MicrolocationService
}

func NewMicrolocationHandler(trace *telemetry.Trace, microlocationService *service.MicrolocationService) *MicrolocationHandler {
	return &MicrolocationHandler{trace: trace, microlocationService: microlocationService}
}

// Create 建立微區位
// @Summary 建立微區位（城市必須已存在；slug 僅需城市內唯一）
// @Tags Microlocation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateMicrolocationDto true "微區位資訊"
// @Success 201 {object} model.Microlocation
// @Failure 409 {object} map[string]string
// @Router /api/microlocations [post]
func (h *MicrolocationHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var body dto.CreateMicrolocationDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	created, createError := h.microlocationService.Create(ctx, &body)
	if createError != nil {
		response.AbortWithError(c, createError)
		return
	}
	response.Create(c, created)
}

// List 微區位列表
// @Summary 微區位列表
// @Tags Microlocation
// @Produce json
// @Param city query string false "城市 id 或 slug"
// @Param enabled query bool false "僅啟用"
// @Success 200 {array} model.Microlocation
// @Router /api/microlocations [get]
func (h *MicrolocationHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var enabled *bool
	if value, present, parseError := validate.GetBoolQuery(c, "enabled"); parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid enabled"))
		return
	} else if present {
		enabled = &value
	}

	micros, listError := h.microlocationService.List(ctx, c.Query("city"), enabled)
	if listError != nil {
		response.AbortWithError(c, listError)
		return
	}
	response.List(c, len(micros), micros)
}

// Get 以 (city, slug) 取微區位
// @Summary 以城市與 slug 取微區位
// @Tags Microlocation
// @Produce json
// @Param city path string true "City ID 或 slug"
// @Param slug path string true "Microlocation slug"
// @Success 200 {object} model.Microlocation
// @Failure 404 {object} map[string]string
// @Router /api/microlocations/{city}/{slug} [get]
func (h *MicrolocationHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	micro, getError := h.microlocationService.GetByCityAndSlug(ctx, c.Param("city"), c.Param("slug"))
	if getError != nil {
		response.AbortWithError(c, getError)
		return
	}
	response.Success(c, micro)
}

// Update 更新微區位
// @Summary 更新微區位
// @Tags Microlocation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Microlocation ID"
// @Param body body dto.UpdateMicrolocationDto true "更新欄位"
// @Success 200 {object} model.Microlocation
// @Failure 404 {object} map[string]string
// @Router /api/microlocations/{id} [put]
func (h *MicrolocationHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	microID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var body dto.UpdateMicrolocationDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	updated, updateError := h.microlocationService.Update(ctx, microID, &body)
	if updateError != nil {
		response.AbortWithError(c, updateError)
		return
	}
	response.Success(c, updated)
}

// UpsertContent SEO 內容 upsert
// @Summary 微區位 SEO 內容 upsert（不存在時建殼）
// @Tags Microlocation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param city path string true "City ID 或 slug"
// @Param slug path string true "Microlocation slug"
// @Param body body dto.MicrolocationContentDto true "SEO 內容"
// @Success 200 {object} model.Microlocation
// @Router /api/microlocations/content/{city}/{slug} [put]
func (h *MicrolocationHandler) UpsertContent(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var body dto.MicrolocationContentDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	micro, upsertError := h.microlocationService.UpsertContent(ctx, c.Param("city"), c.Param("slug"), &body)
	if upsertError != nil {
		response.AbortWithError(c, upsertError)
		return
	}
	response.Success(c, micro)
}

// Delete 軟刪除微區位
// @Summary 軟刪除微區位（標記刪除並停用）
// @Tags Microlocation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Microlocation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/microlocations/{id} [delete]
func (h *MicrolocationHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	microID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.microlocationService.SoftDelete(ctx, microID); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "microlocation deleted"})
}

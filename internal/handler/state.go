package handler

import (
	cErr "uptown/internal/pkg/error"
	"uptown/internal/pkg/response"
	"uptown/internal/service"
	"uptown/internal/telemetry"
	"uptown/internal/dto"
	"uptown/utils/validate"

	"github.com/gin-gonic/gin"
)

type StateHandler struct {
	trace        *telemetry.Trace
	stateService *service.StateService
}

func NewStateHandler(trace *telemetry.Trace, stateService *service.StateService) *StateHandler {
	return &StateHandler{trace: trace, stateService: stateService}
}

// Create 建立州別
// @Summary 建立州別
// @Tags State
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateStateDto true "州別資訊"
// @Success 201 {object} model.State
// @Failure 409 {object} map[string]string
// @Router /api/states [post]
func (h *StateHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var body dto.CreateStateDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	created, createError := h.stateService.Create(ctx, &body)
	if createError != nil {
		response.AbortWithError(c, createError)
		return
	}
	response.Create(c, created)
}

// List 州別列表
// @Summary 州別列表
// @Tags State
// @Produce json
// @Param enabled query bool false "僅啟用"
// @Param search query string false "名稱關鍵字"
// @Success 200 {array} model.State
// @Router /api/states [get]
func (h *StateHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var enabled *bool
	if value, present, parseError := validate.GetBoolQuery(c, "enabled"); parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid enabled"))
		return
	} else if present {
		enabled = &value
	}

	states, listError := h.stateService.List(ctx, enabled, c.Query("search"))
	if listError != nil {
		response.AbortWithError(c, listError)
		return
	}
	response.List(c, len(states), states)
}

// Get 取單筆州別
// @Summary 以 id 或 slug 取州別
// @Tags State
// @Produce json
// @Param key path string true "State ID 或 slug"
// @Success 200 {object} model.State
// @Failure 404 {object} map[string]string
// @Router /api/states/{key} [get]
func (h *StateHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	state, getError := h.stateService.GetByKey(ctx, c.Param("key"))
	if getError != nil {
		response.AbortWithError(c, getError)
		return
	}
	response.Success(c, state)
}

// Update 更新州別
// @Summary 更新州別
// @Tags State
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param key path string true "State ID 或 slug"
// @Param body body dto.UpdateStateDto true "更新欄位"
// @Success 200 {object} model.State
// @Failure 404 {object} map[string]string
// @Router /api/states/{key} [put]
func (h *StateHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var body dto.UpdateStateDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	updated, updateError := h.stateService.Update(ctx, c.Param("key"), &body)
	if updateError != nil {
		response.AbortWithError(c, updateError)
		return
	}
	response.Success(c, updated)
}

// Delete 刪除州別
// @Summary 刪除州別（不 cascade）
// @Tags State
// @Security BearerAuth
// @Produce json
// @Param key path string true "State ID 或 slug"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/states/{key} [delete]
func (h *StateHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	if err := h.stateService.Delete(ctx, c.Param("key")); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "state deleted"})
}

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

type LeadHandler struct {
	trace       *telemetry.Trace
	leadService *service.LeadService
}

func NewLeadHandler(trace *telemetry.Trace, leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{trace: trace, leadService: leadService}
}

// Create 建立詢問單
// @Summary 建立訪客詢問單（公開端點）
// @Tags Lead
// @Accept json
// @Produce json
// @Param body body dto.CreateLeadDto true "詢問單內容"
// @Success 201 {object} model.Lead
// @Router /api/leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var body dto.CreateLeadDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	created, createError := h.leadService.Create(ctx, &body)
	if createError != nil {
		response.AbortWithError(c, createError)
		return
	}
	response.Create(c, created)
}

// List 詢問單列表
// @Summary 詢問單列表（可依 city、propertyId 過濾）
// @Tags Lead
// @Security BearerAuth
// @Produce json
// @Param city query string false "城市 slug"
// @Param propertyId query string false "Property ID"
// @Param page query int false "頁碼（預設 1）"
// @Param limit query int false "每頁筆數（預設 20）"
// @Success 200 {array} model.Lead
// @Router /api/leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

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

	leads, totalCount, listError := h.leadService.List(ctx, c.Query("city"), c.Query("propertyId"), page, limit)
	if listError != nil {
		response.AbortWithError(c, listError)
		return
	}
	response.List(c, int(totalCount), leads)
}

// Delete 刪除詢問單
// @Summary 刪除詢問單
// @Tags Lead
// @Security BearerAuth
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	leadID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.leadService.Delete(ctx, leadID); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "lead deleted"})
}

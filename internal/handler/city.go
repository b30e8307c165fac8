package handler

import (
	"uptown/internal/dto"
	"uptown/internal/pkg/response"
	"uptown/internal/service"
	"uptown/internal/telemetry"
	"uptown/utils/validate"

	"github.com/gin-gonic/gin"
)

type CityHandler struct {
	trace       *telemetry.Trace
	cityService *service.CityService
}

func NewCityHandler(trace *telemetry.Trace, cityService *service.CityService) *CityHandler {
	return &CityHandler{trace: trace, cityService: cityService}
}

// Create 建立城市
// @Summary 建立城市（州別必須已存在）
// @Tags City
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateCityDto true "城市資訊"
// @Success 201 {object} model.CityContent
// @Failure 409 {object} map[string]string
// @Router /api/cities [post]
func (h *CityHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var body dto.CreateCityDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	created, createError := h.cityService.Create(ctx, &body)
	if createError != nil {
		response.AbortWithError(c, createError)
		return
	}
	response.Create(c, created)
}

// List 城市列表
// @Summary 城市列表
// @Tags City
// @Produce json
// @Param state query string false "州別 id 或 slug"
// @Param search query string false "名稱關鍵字"
// @Success 200 {array} model.CityContent
// @Router /api/cities [get]
func (h *CityHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	cities, listError := h.cityService.List(ctx, c.Query("state"), c.Query("search"))
	if listError != nil {
		response.AbortWithError(c, listError)
		return
	}
	response.List(c, len(cities), cities)
}

// Get 取單筆城市
// @Summary 以 id 或 slug 取城市
// @Tags City
// @Produce json
// @Param key path string true "City ID 或 slug"
// @Success 200 {object} model.CityContent
// @Failure 404 {object} map[string]string
// @Router /api/cities/{key} [get]
func (h *CityHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	city, getError := h.cityService.GetByKey(ctx, c.Param("key"))
	if getError != nil {
		response.AbortWithError(c, getError)
		return
	}
	response.Success(c, city)
}

// Update 更新城市
// @Summary 更新城市
// @Tags City
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param key path string true "City ID 或 slug"
// @Param body body dto.UpdateCityDto true "更新欄位"
// @Success 200 {object} model.CityContent
// @Failure 404 {object} map[string]string
// @Router /api/cities/{key} [put]
func (h *CityHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var body dto.UpdateCityDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	updated, updateError := h.cityService.Update(ctx, c.Param("key"), &body)
	if updateError != nil {
		response.AbortWithError(c, updateError)
		return
	}
	response.Success(c, updated)
}

// UpsertContent SEO 內容 upsert
// @Summary 城市 SEO 內容 upsert（城市不存在時建殼）
// @Tags City
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "City slug"
// @Param body body dto.CityContentDto true "SEO 內容"
// @Success 200 {object} model.CityContent
// @Router /api/cities/content/{slug} [put]
func (h *CityHandler) UpsertContent(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var body dto.CityContentDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	city, upsertError := h.cityService.UpsertContent(ctx, c.Param("slug"), &body)
	if upsertError != nil {
		response.AbortWithError(c, upsertError)
		return
	}
	response.Success(c, city)
}

// Delete 刪除城市
// @Summary 刪除城市（不 cascade）
// @Tags City
// @Security BearerAuth
// @Produce json
// @Param key path string true "City ID 或 slug"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/cities/{key} [delete]
func (h *CityHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	if err := h.cityService.Delete(ctx, c.Param("key")); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "city deleted"})
}

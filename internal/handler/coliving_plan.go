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

type ColivingPlanHandler struct {
	trace       *telemetry.Trace
	planService *service.ColivingPlanService
}

func NewColivingPlanHandler(trace *telemetry.Trace, planService *service.ColivingPlanService) *ColivingPlanHandler {
	return &ColivingPlanHandler{trace: trace, planService: planService}
}

// Create 建立方案
// @Summary 建立共居方案（multipart；image 檔案可選）
// @Tags ColivingPlan
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param type formData string true "方案類型"
// @Param description formData string false "描述"
// @Param image formData file false "圖片檔案"
// @Success 201 {object} model.ColivingPlan
// @Router /api/coliving-plans [post]
func (h *ColivingPlanHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	image, readError := readSingleUploadFile(c, "image", core.AssetFolderPlans)
	if readError != nil {
		response.AbortWithError(c, readError)
		return
	}

	created, createError := h.planService.Create(ctx, c.PostForm("type"), c.PostForm("description"), image)
	if createError != nil {
		response.AbortWithError(c, createError)
		return
	}
	response.Create(c, created)
}

// List 方案列表
// @Summary 共居方案列表（預設僅啟用；all=true 含停用）
// @Tags ColivingPlan
// @Produce json
// @Param all query bool false "含停用"
// @Success 200 {array} model.ColivingPlan
// @Router /api/coliving-plans [get]
func (h *ColivingPlanHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	all, _, parseError := validate.GetBoolQuery(c, "all")
	if parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid all"))
		return
	}

	plans, listError := h.planService.List(ctx, all)
	if listError != nil {
		response.AbortWithError(c, listError)
		return
	}
	response.List(c, len(plans), plans)
}

// Get 取單筆方案
// @Summary 以 id 取共居方案
// @Tags ColivingPlan
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} model.ColivingPlan
// @Failure 404 {object} map[string]string
// @Router /api/coliving-plans/{id} [get]
func (h *ColivingPlanHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	planID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	plan, getError := h.planService.GetByID(ctx, planID)
	if getError != nil {
		response.AbortWithError(c, getError)
		return
	}
	response.Success(c, plan)
}

// Update 更新方案
// @Summary 更新共居方案（multipart；新圖片會替換並銷毀舊資產）
// @Tags ColivingPlan
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} model.ColivingPlan
// @Failure 404 {object} map[string]string
// @Router /api/coliving-plans/{id} [put]
func (h *ColivingPlanHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	planID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var body dto.UpdateColivingPlanDto
	if planType, ok := c.GetPostForm("type"); ok {
		body.Type = &planType
	}
	if description, ok := c.GetPostForm("description"); ok {
		body.Description = &description
	}
	if value, present, parseError := validate.GetBoolPostForm(c, "enabled"); parseError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid enabled"))
		return
	} else if present {
		body.Enabled = &value
	}

	image, readError := readSingleUploadFile(c, "image", core.AssetFolderPlans)
	if readError != nil {
		response.AbortWithError(c, readError)
		return
	}

	updated, updateError := h.planService.Update(ctx, planID, &body, image)
	if updateError != nil {
		response.AbortWithError(c, updateError)
		return
	}
	response.Success(c, updated)
}

// SetEnabled 啟用/停用
// @Summary 共居方案啟用/停用
// @Tags ColivingPlan
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param body body dto.SetEnabledDto true "啟用旗標"
// @Success 200 {object} map[string]bool
// @Router /api/coliving-plans/{id}/enable [patch]
func (h *ColivingPlanHandler) SetEnabled(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	planID, cause, respErr := validate.ParseObjectID(c, "id")
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

	if err := h.planService.SetEnabled(ctx, planID, *body.Enabled); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"enabled": *body.Enabled})
}

// Delete 刪除方案
// @Summary 刪除共居方案；預設軟刪除，hard=true 連同圖片資產硬刪除
// @Tags ColivingPlan
// @Security BearerAuth
// @Produce json
// @Param id path string true "Plan ID"
// @Param hard query bool false "硬刪除"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/coliving-plans/{id} [delete]
func (h *ColivingPlanHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	planID, cause, respErr := validate.ParseObjectID(c, "id")
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
		deleteError = h.planService.HardDelete(ctx, planID)
	} else {
		deleteError = h.planService.SoftDelete(ctx, planID)
	}
	if deleteError != nil {
		response.AbortWithError(c, deleteError)
		return
	}
	response.Success(c, gin.H{"message": "coliving plan deleted"})
}

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

type MediaHandler struct {
	trace        *telemetry.Trace
	mediaService *service.MediaService
}

func NewMediaHandler(trace *telemetry.Trace, mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{trace: trace, mediaService: mediaService}
}

// Upload 上傳媒體
// @Summary 上傳媒體檔案（multipart；files 多檔，alts 依序對應替代文字）
// @Tags Media
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "媒體檔案（可多個）"
// @Param alts formData string false "替代文字（可多個，依序對應）"
// @Success 201 {array} model.MediaFile
// @Router /api/media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	files, readError := readUploadFiles(c, "files", core.AssetFolderMedia)
	if readError != nil {
		response.AbortWithError(c, readError)
		return
	}
	if len(files) == 0 {
		response.AbortWithError(c, cErr.BadRequestParams("no files provided"))
		return
	}

	created, uploadError := h.mediaService.Upload(ctx, files, c.PostFormArray("alts"))
	if uploadError != nil {
		response.AbortWithError(c, uploadError)
		return
	}
	response.Create(c, created)
}

// List 媒體庫列表
// @Summary 媒體庫列表（優先項目在前）
// @Tags Media
// @Security BearerAuth
// @Produce json
// @Param resource_type query string false "資源類型（image/raw）"
// @Param page query int false "頁碼（預設 1）"
// @Param limit query int false "每頁筆數（預設 50）"
// @Success 200 {array} model.MediaFile
// @Router /api/media [get]
func (h *MediaHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	page, pageError := validate.GetInt64Query(c, "page", 1)
	if pageError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid page"))
		return
	}
	limit, limitError := validate.GetInt64Query(c, "limit", 50)
	if limitError != nil {
		response.AbortWithError(c, cErr.BadRequestParams("invalid limit"))
		return
	}

	mediaFiles, totalCount, listError := h.mediaService.List(ctx, c.Query("resource_type"), page, limit)
	if listError != nil {
		response.AbortWithError(c, listError)
		return
	}
	response.List(c, int(totalCount), mediaFiles)
}

// Update 更新媒體中繼資料
// @Summary 更新媒體檔案的 alt / 優先序
// @Tags Media
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Media ID"
// @Param body body dto.UpdateMediaFileDto true "更新內容"
// @Success 200 {object} model.MediaFile
// @Failure 404 {object} map[string]string
// @Router /api/media/{id} [put]
func (h *MediaHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	mediaFileID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var body dto.UpdateMediaFileDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	updated, updateError := h.mediaService.Update(ctx, mediaFileID, &body)
	if updateError != nil {
		response.AbortWithError(c, updateError)
		return
	}
	response.Success(c, updated)
}

// Delete 刪除媒體
// @Summary 刪除媒體檔案；連同 Cloudinary 資產一併銷毀
// @Tags Media
// @Security BearerAuth
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/media/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	mediaFileID, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.mediaService.Delete(ctx, mediaFileID); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "media file deleted"})
}

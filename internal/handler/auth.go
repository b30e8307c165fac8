package handler

import (
	"uptown/internal/dto"
	"uptown/internal/pkg/response"
	"uptown/internal/service"
	"uptown/internal/telemetry"
	"uptown/utils/validate"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	trace       *telemetry.Trace
	authService *service.AuthService
}

func NewAuthHandler(trace *telemetry.Trace, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{trace: trace, authService: authService}
}

// Login 管理者登入
// @Summary 管理者登入；同一 IP 連續失敗會被限流
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginDto true "帳號密碼"
// @Success 200 {object} dto.LoginResponseDto
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /api/admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var body dto.LoginDto
	if cause, respErr := validate.BindAndValidate(c, &body); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	result, loginError := h.authService.Login(ctx, &body, c.ClientIP())
	if loginError != nil {
		response.AbortWithError(c, loginError)
		return
	}
	response.Success(c, result)
}

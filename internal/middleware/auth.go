package middleware

import (
	"strings"

	"uptown/internal/core"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/pkg/response"
	"uptown/internal/service"
	"uptown/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	trace       *telemetry.Trace
	authService *service.AuthService
}

func NewAuth(trace *telemetry.Trace, authService *service.AuthService) *Auth {
	return &Auth{trace: trace, authService: authService}
}

// Guard 驗證 Authorization: Bearer <token>，通過後把身分放進 gin.Context
func (middleware *Auth) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanAuthMiddleware))

		meta := core.TraceAuthMeta{
			Path:     c.Request.URL.Path,
			ClientIP: c.ClientIP(),
		}

		token := readBearerToken(c)
		if token == "" {
			meta.Status = "missing_token"
			middleware.trace.ApplyTraceAttributes(span, meta)
			cause := cErr.Unauthorized("missing bearer token")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}

		claims, verifyError := middleware.authService.VerifyToken(token)
		if verifyError != nil {
			meta.Status = "invalid_token"
			middleware.trace.ApplyTraceAttributes(span, meta)
			response.AbortWithError(c, verifyError)
			end(verifyError)
			return
		}

		meta.Username = claims.Username
		meta.Status = "success"
		middleware.trace.ApplyTraceAttributes(span, meta)
		end(nil)

		c.Set("adminUser", claims.Username)
		c.Set("adminRole", claims.Role)
		c.Next()
	}
}

func readBearerToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if auth == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[len("Bearer "):])
}

package service

import (
	"context"
	"crypto/subtle"
	"time"

	"uptown/config"
	"uptown/internal/core"
	redisDb "uptown/internal/database/redis/repository"
	"uptown/internal/dto"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/telemetry"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

type AuthService struct {
	trace            *telemetry.Trace
	loginLimiterRepo *redisDb.LoginLimiterRepository
	config           *config.Configuration
	logger           *zap.Logger
}

func NewAuthService(
	trace *telemetry.Trace,
	loginLimiterRepo *redisDb.LoginLimiterRepository,
	config *config.Configuration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		trace:            trace,
		loginLimiterRepo: loginLimiterRepo,
		config:           config,
		logger:           logger,
	}
}

// Login 驗證帳密並簽發 JWT。每個來源 IP 有固定窗口的嘗試上限，
// 登入成功時清除嘗試紀錄。
func (s *AuthService) Login(ctx context.Context, input *dto.LoginDto, clientIP string) (_ *dto.LoginResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	traceMetadata := core.TraceLoginMeta{Username: input.Username, ClientIP: clientIP}

	limitCount := s.config.Auth.LoginLimitCount
	windowSeconds := s.config.Auth.LoginWindowSecs
	if limitCount > 0 && windowSeconds > 0 {
		if _, _, consumeError := s.loginLimiterRepo.Consume(ctx, clientIP, windowSeconds, limitCount); consumeError != nil {
			if consumeError == redisDb.ErrLoginLimitExceeded {
				traceMetadata.Status = "rate_limited"
				s.trace.ApplyTraceAttributes(span, traceMetadata)
				return nil, cErr.RateLimitExceeded("too many login attempts")
			}
			// Redis 故障不阻擋登入
			s.logger.Warn("login limiter unavailable", zap.Error(consumeError))
		}
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.config.Auth.AdminUsername)) == 1
	passwordMatch := subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.config.Auth.AdminPassword)) == 1
	if !usernameMatch || !passwordMatch {
		traceMetadata.Status = "invalid_credentials"
		s.trace.ApplyTraceAttributes(span, traceMetadata)
		return nil, cErr.Unauthorized("invalid credentials")
	}

	ttlMinutes := s.config.Auth.TokenTTLMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = 60 * 24
	}
	expiresAt := time.Now().Add(time.Duration(ttlMinutes) * time.Minute)

	claims := core.Claims{
		Username: input.Username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.App.Name,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, signError := token.SignedString([]byte(s.config.Auth.TokenSecret))
	if signError != nil {
		return nil, cErr.InternalServer("sign token failed")
	}

	if limitCount > 0 {
		if resetError := s.loginLimiterRepo.Reset(ctx, clientIP); resetError != nil {
			s.logger.Warn("login limiter reset failed", zap.Error(resetError))
		}
	}

	traceMetadata.Status = "ok"
	s.trace.ApplyTraceAttributes(span, traceMetadata)
	s.logger.Info("admin login", zap.String("username", input.Username), zap.String("ip", clientIP))

	return &dto.LoginResponseDto{Token: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// VerifyToken 解析並驗證 JWT；middleware 使用
func (s *AuthService) VerifyToken(tokenString string) (*core.Claims, error) {
	claims := &core.Claims{}
	token, parseError := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, cErr.InvalidSession("unexpected signing method")
		}
		return []byte(s.config.Auth.TokenSecret), nil
	})
	if parseError != nil || !token.Valid {
		return nil, cErr.InvalidSession("invalid or expired token")
	}
	return claims, nil
}

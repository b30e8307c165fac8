package middleware

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"uptown/config"
	"uptown/internal/core"
	"uptown/internal/database/fluentd/model"
	"uptown/internal/database/fluentd/repository"
	cErr "uptown/internal/pkg/error"
	res "uptown/internal/pkg/response"
	"uptown/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := time.Now()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		}
		RequestID, err := uuid.NewV7()
		if err != nil {
			RequestID = uuid.New()
		}
		// ---- panic recover 必須在 c.Next() 之前註冊 ----
		defer func() {
			if rec := recover(); rec != nil {
				duration := time.Since(requestTime)

				ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
				meta := core.TracePanicMeta{
					Path:       c.Request.URL.Path,
					Method:     c.Request.Method,
					ClientIP:   c.ClientIP(),
					UserAgent:  c.Request.UserAgent(),
					DurationMs: float64(duration.Milliseconds()),
					Message:    toSafeString(fmt.Sprint(rec)),
					Stack:      toSafeStack(debug.Stack()),
					Status:     http.StatusInternalServerError,
				}
				middleware.trace.ApplyTraceAttributes(span, meta)

				middleware.logger.Error("[PANIC] Recovered",
					zap.String("path", meta.Path),
					zap.String("method", meta.Method),
					zap.String("client_ip", meta.ClientIP),
					zap.String("user_agent", meta.UserAgent),
					zap.Duration("duration", duration),
					zap.String("panic", meta.Message),
					zap.String("stacktrace", meta.Stack),
					zap.String("requestId", RequestID.String()),
				)

				// 尚未回寫才輸出
				if !c.Writer.Written() {
					res.FailByErr(c, RequestID.String(), cErr.InternalServer("unexpected panic"))
				}
				responseMeta := model.ResponseLog{
					RequestID:   RequestID.String(),
					ProjectName: middleware.config.App.Name,
					Code:        cErr.INTERNAL_ERROR,
					StatusCode:  http.StatusInternalServerError,
					Error:       toSafeString(fmt.Sprint(rec)),
					ResponseTS:  time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
					Version:     middleware.config.App.Version,
				}
				middleware.fluentdRepository.LogResponse(ctx, responseMeta)
				if middleware.metric.HttpFailTotal != nil {
					middleware.metric.HttpFailTotal.WithLabelValues(c.FullPath(), "panic").Inc()
				}
				end(cErr.InternalServer("unexpected panic"))
				c.Abort()
			}
		}()

		// 執行下游
		c.Next()

		// ---- 統一處理非 panic 的 gin errors（若尚未回寫）----
		if len(c.Errors) > 0 && !c.Writer.Written() {
			duration := time.Since(requestTime)

			ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))

			// 找第一個 *cErr.Error
			for _, e := range c.Errors {
				if appErr, ok := e.Err.(*cErr.Error); ok {
					middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
						Code:       appErr.ErrorCode(),
						Message:    appErr.Error(),
						Detail:     appErr.ErrorDesc(),
						DurationMs: float64(duration.Milliseconds()),
						Status:     appErr.HttpCode(),
					})
					middleware.logger.Warn(appErr.Error(),
						zap.Int("code", appErr.ErrorCode()),
						zap.String("data", appErr.ErrorDesc()),
						zap.Duration("duration", duration),
						zap.String("requestId", RequestID.String()),
					)
					responseMeta := model.ResponseLog{
						RequestID:   RequestID.String(),
						ProjectName: middleware.config.App.Name,
						Code:        appErr.ErrorCode(),
						StatusCode:  appErr.HttpCode(),
						Error:       appErr.Error(),
						ResponseTS:  time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
						Version:     middleware.config.App.Version,
					}
					middleware.fluentdRepository.LogResponse(ctx, responseMeta)
					if middleware.metric.HttpFailTotal != nil {
						middleware.metric.HttpFailTotal.WithLabelValues(c.FullPath(), appErr.Error()).Inc()
					}
					res.FailByErr(c, RequestID.String(), appErr)
					end(appErr)
					c.Abort()
					return
				}
			}

			// 其餘未知錯誤
			unknown := c.Errors.String()
			middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
				Code:       cErr.INTERNAL_ERROR,
				Message:    "unknown-error",
				Detail:     toSafeString(unknown),
				DurationMs: float64(duration.Milliseconds()),
				Status:     http.StatusInternalServerError,
			})
			middleware.logger.Warn("[ERROR] unknown",
				zap.String("error", unknown),
				zap.Duration("duration", duration),
				zap.String("requestId", RequestID.String()),
			)
			responseMeta := model.ResponseLog{
				RequestID:   RequestID.String(),
				ProjectName: middleware.config.App.Name,
				Code:        cErr.INTERNAL_ERROR,
				StatusCode:  http.StatusInternalServerError,
				Error:       toSafeString(unknown),
				ResponseTS:  time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
				Version:     middleware.config.App.Version,
			}
			middleware.fluentdRepository.LogResponse(ctx, responseMeta)
			if middleware.metric.HttpFailTotal != nil {
				middleware.metric.HttpFailTotal.WithLabelValues(c.FullPath(), "unknown").Inc()
			}
			res.Fail(c, RequestID.String(), http.StatusInternalServerError, cErr.INTERNAL_ERROR, "unknown-error", unknown)
			end(nil)
			c.Abort()
			return
		}
	}
}

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

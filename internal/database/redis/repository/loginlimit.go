package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uptown/internal/core"
	client "uptown/internal/database/client"
	"uptown/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

type LoginLimiterRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
}

func NewLoginLimiterRepository(trace *telemetry.Trace, client *client.RedisClient) *LoginLimiterRepository {
	return &LoginLimiterRepository{trace: trace, client: client.Client()}
}

var ErrLoginLimitExceeded = errors.New("login attempt limit exceeded")

// Consume 消耗一次登入嘗試配額；自動處理新週期初始化與剩餘 TTL。
// 回傳：remaining（剩餘次數）、ttlSec（剩餘秒數）、err（若超限為 ErrLoginLimitExceeded）
func (repository *LoginLimiterRepository) Consume(
	contextValue context.Context,
	clientIP string,
	windowSeconds int64,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() {
		endSpan(returnedError)
	}()

	traceMetadata := core.TraceLoginLimitMeta{
		ClientIP:  clientIP,
		Limit:     limitCount,
		WindowSec: windowSeconds,
		Op:        "consume",
	}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	redisKey := repository.buildKey(clientIP)
	expirationDuration := time.Duration(windowSeconds) * time.Second

	// 嘗試初始化：SETNX key value EX expiration
	wasSet, setError := repository.client.SetNX(
		contextValue,
		redisKey,
		limitCount-1, // 本次消耗一次，所以初始值 = 總額-1
		expirationDuration,
	).Result()
	if setError != nil {
		returnedError = setError
		return 0, 0, returnedError
	}
	if wasSet {
		// 初始化成功，代表這是第一次消耗
		remainingCount = limitCount - 1
		if remainingCount < 0 {
			remainingCount = 0
			returnedError = ErrLoginLimitExceeded
		}
		timeToLiveSeconds = windowSeconds
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return remainingCount, timeToLiveSeconds, returnedError
	}

	// Key 已存在 → 執行 DECR 扣一次
	newValue, decrError := repository.client.Decr(contextValue, redisKey).Result()
	if decrError != nil {
		returnedError = decrError
		return 0, 0, returnedError
	}

	// 查 TTL
	ttlDuration, _ := repository.client.TTL(contextValue, redisKey).Result()
	if ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	}

	if newValue < 0 {
		remainingCount = 0
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		returnedError = ErrLoginLimitExceeded
		return remainingCount, timeToLiveSeconds, returnedError
	}

	remainingCount = int(newValue)
	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

// Reset 清除該來源的嘗試紀錄（登入成功後呼叫）
func (repository *LoginLimiterRepository) Reset(contextValue context.Context, clientIP string) (returnedError error) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	traceMetadata := core.TraceLoginLimitMeta{
		ClientIP: clientIP,
		Op:       "reset",
	}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	returnedError = repository.client.Del(contextValue, repository.buildKey(clientIP)).Err()
	return returnedError
}

// buildKey 建構登入限流用的 Redis key
func (r *LoginLimiterRepository) buildKey(clientIP string) string {
	return fmt.Sprintf("%s:%s", core.RedisKeyLoginAttempts, clientIP)
}

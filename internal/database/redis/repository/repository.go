package repository

import (
	"github.com/google/wire"
)

// 統一管理所有 Redis repository
type RedisRepository struct {
	loginLimiterRepo *LoginLimiterRepository
}

// 建立 Redis repository 物件
func NewRedisRepository(
	loginLimiterRepo *LoginLimiterRepository,
) *RedisRepository {
	return &RedisRepository{
		loginLimiterRepo: loginLimiterRepo,
	}
}

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewLoginLimiterRepository,
	NewRedisRepository)

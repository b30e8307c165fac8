package database

import (
	client "uptown/internal/database/client"
	fluentdRepo "uptown/internal/database/fluentd/repository"
	mongoRepo "uptown/internal/database/mongodb/repository"
	redisRepo "uptown/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)

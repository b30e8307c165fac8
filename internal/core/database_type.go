package core

// ─── Database Types ────────────────────────────────────────────────────────────

// DatabaseType defines the type of database
type DatabaseType string

const (
	Mongo DatabaseType = "mongo"
	Redis DatabaseType = "redis"
)

// Databases contains all supported database types
var Databases = []DatabaseType{Mongo, Redis}

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────
const (
	MongoDBUptown MongoDatabaseName = "uptown"
)

// MongoDB collections
const (
	MongoCollectionProperties     MongoCollection = "properties"
	MongoCollectionStates         MongoCollection = "states"
	MongoCollectionCityContents   MongoCollection = "city_contents"
	MongoCollectionMicrolocations MongoCollection = "microlocations"
	MongoCollectionAmenities      MongoCollection = "amenities"
	MongoCollectionColivingPlans  MongoCollection = "coliving_plans"
	MongoCollectionLeads          MongoCollection = "leads"
	MongoCollectionMediaFiles     MongoCollection = "media_files"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	// 登入嘗試限流：login_attempts:{clientIP}
	RedisKeyLoginAttempts RedisKey = "login_attempts"
)

// ─── Fluentd Tags ──────────────────────────────────────────────────────────────

const (
	FluentdRequest  FluentdSubTag = "router.request"
	FluentdResponse FluentdSubTag = "router.response"
)

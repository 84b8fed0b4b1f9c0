package config

const (
	EnvPrefix = "LUXE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageDriverMemory   = "memory"
	StorageDriverRedis    = "redis"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"

	EnvAppEnv        = "LUXE_APP_ENV"
	EnvPort          = "LUXE_APP_PORT"
	EnvStorageDriver = "LUXE_STORAGE_DRIVER"
	EnvDBDSN         = "LUXE_DB_DSN"
	EnvRedisURL      = "LUXE_REDIS_URL"
	EnvRedisAddr     = "LUXE_REDIS_ADDR"
	EnvVisitorSecret = "LUXE_VISITOR_SECRET"
	EnvCatalogBase   = "LUXE_CATALOG_BASE_URL"
	EnvCatalogTTL    = "LUXE_CATALOG_CACHE_TTL"
)

var storageDrivers = []string{
	StorageDriverMemory,
	StorageDriverRedis,
	StorageDriverSQLite,
	StorageDriverPostgres,
}

package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	SessionsBackendMemory = "memory"
	SessionsBackendRedis  = "redis"

	EnvAppEnv          = "STOREFRONT_APP_ENV"
	EnvPort            = "STOREFRONT_APP_PORT"
	EnvCatalogPath     = "STOREFRONT_CATALOG_PATH"
	EnvSessionsBackend = "STOREFRONT_SESSIONS_BACKEND"
	EnvRedisURL        = "STOREFRONT_REDIS_URL"
)

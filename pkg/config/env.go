package config

const (
	EnvPrefix = "MINITHAI"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv   = "MINITHAI_APP_ENV"
	EnvPort     = "MINITHAI_APP_PORT"
	EnvDBDSN    = "MINITHAI_DB_DSN"
	EnvDBHost   = "MINITHAI_DB_HOST"
	EnvDBUser   = "MINITHAI_DB_USER"
	EnvDBName   = "MINITHAI_DB_NAME"
	EnvRedisURL = "MINITHAI_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

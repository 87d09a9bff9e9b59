package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "TILEBILL_APP_ENV"
	EnvPort     = "TILEBILL_APP_PORT"
	EnvRedisURL = "TILEBILL_REDIS_URL"

	EnvDBDSN  = "TILEBILL_DB_DSN"
	EnvDBHost = "TILEBILL_DB_HOST"
	EnvDBUser = "TILEBILL_DB_USER"
	EnvDBName = "TILEBILL_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

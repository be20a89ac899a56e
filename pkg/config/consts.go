package config

// EnvPrefix is intentionally empty: every variable names its full key in the
// envconfig tag so the WHATSCART_ prefix stays greppable.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "WHATSCART_APP_ENV"
	EnvPort         = "WHATSCART_APP_PORT"
	EnvDBDSN        = "WHATSCART_DB_DSN"
	EnvDBHost       = "WHATSCART_DB_HOST"
	EnvDBUser       = "WHATSCART_DB_USER"
	EnvDBName       = "WHATSCART_DB_NAME"
	EnvRedisURL     = "WHATSCART_REDIS_URL"
	EnvJWTSecret    = "WHATSCART_JWT_SECRET"
	EnvJWTIssuer    = "WHATSCART_JWT_ISSUER"
	EnvShareBaseURL = "WHATSCART_SHARE_BASE_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Plan     PlanConfig
	Share    ShareConfig
	GCP      GCPConfig
	GCS      GCSConfig
	Media    MediaConfig
	PubSub   PubSubConfig

	AuthRateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WHATSCART_APP_ENV" required:"true"`
	Port         string `envconfig:"WHATSCART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WHATSCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WHATSCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WHATSCART_DB_DSN"`
	Driver string `envconfig:"WHATSCART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WHATSCART_DB_HOST"`
	LegacyPort     int    `envconfig:"WHATSCART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WHATSCART_DB_USER"`
	LegacyPassword string `envconfig:"WHATSCART_DB_PASSWORD"`
	LegacyName     string `envconfig:"WHATSCART_DB_NAME"`
	LegacySSLMode  string `envconfig:"WHATSCART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WHATSCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WHATSCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WHATSCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WHATSCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"WHATSCART_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WHATSCART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WHATSCART_REDIS_ADDR"`
	Password     string        `envconfig:"WHATSCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"WHATSCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WHATSCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WHATSCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WHATSCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WHATSCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WHATSCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WHATSCART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WHATSCART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"WHATSCART_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WHATSCART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WHATSCART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WHATSCART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WHATSCART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WHATSCART_ARGON_KEY_LEN" default:"32"`
}

// PlanConfig carries the free-plan quotas enforced on sellers.
type PlanConfig struct {
	MaxProducts     int `envconfig:"WHATSCART_PLAN_MAX_PRODUCTS" default:"20"`
	MaxProductPhoto int `envconfig:"WHATSCART_PLAN_MAX_PRODUCT_IMAGES" default:"5"`
}

// ShareConfig controls shared-cart snapshot generation.
type ShareConfig struct {
	BaseURL     string        `envconfig:"WHATSCART_SHARE_BASE_URL" required:"true"`
	TTL         time.Duration `envconfig:"WHATSCART_SHARE_TTL" default:"720h"`
	IDLength    int           `envconfig:"WHATSCART_SHARE_ID_LENGTH" default:"9"`
	MaxAttempts int           `envconfig:"WHATSCART_SHARE_ID_MAX_ATTEMPTS" default:"5"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"WHATSCART_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"WHATSCART_GCP_CREDENTIALS_JSON"`
}

type GCSConfig struct {
	BucketName string `envconfig:"WHATSCART_GCS_BUCKET_NAME"`
}

type MediaConfig struct {
	MaxUploadBytes int64 `envconfig:"WHATSCART_MEDIA_MAX_UPLOAD_BYTES" default:"5242880"`
}

// AuthRateLimitConfig throttles credential endpoints per IP and per email.
type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"WHATSCART_AUTH_RL_LOGIN_WINDOW" default:"10m"`
	LoginIPLimit       int           `envconfig:"WHATSCART_AUTH_RL_LOGIN_IP_LIMIT" default:"30"`
	LoginEmailLimit    int           `envconfig:"WHATSCART_AUTH_RL_LOGIN_EMAIL_LIMIT" default:"10"`
	RegisterWindow     time.Duration `envconfig:"WHATSCART_AUTH_RL_REGISTER_WINDOW" default:"1h"`
	RegisterIPLimit    int           `envconfig:"WHATSCART_AUTH_RL_REGISTER_IP_LIMIT" default:"10"`
	RegisterEmailLimit int           `envconfig:"WHATSCART_AUTH_RL_REGISTER_EMAIL_LIMIT" default:"5"`
}

type PubSubConfig struct {
	Enabled         bool   `envconfig:"WHATSCART_PUBSUB_ENABLED" default:"false"`
	CartEventsTopic string `envconfig:"WHATSCART_PUBSUB_CART_EVENTS_TOPIC" default:"wc-cart-events"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

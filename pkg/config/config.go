package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "QUOTATION"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Quote        QuoteConfig
	Draft        DraftConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"QUOTATION_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTATION_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"QUOTATION_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTATION_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"QUOTATION_DB_DSN"`

	Host     string `envconfig:"QUOTATION_DB_HOST"`
	Port     int    `envconfig:"QUOTATION_DB_PORT" default:"5432"`
	User     string `envconfig:"QUOTATION_DB_USER"`
	Password string `envconfig:"QUOTATION_DB_PASSWORD"`
	Name     string `envconfig:"QUOTATION_DB_NAME"`
	SSLMode  string `envconfig:"QUOTATION_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUOTATION_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTATION_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTATION_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTATION_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTATION_REDIS_URL"`
	Address      string        `envconfig:"QUOTATION_REDIS_ADDR"`
	Password     string        `envconfig:"QUOTATION_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUOTATION_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUOTATION_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTATION_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTATION_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTATION_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUOTATION_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"QUOTATION_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"QUOTATION_JWT_ISSUER" default:"quotation-backend"`
	ExpirationMinutes      int    `envconfig:"QUOTATION_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"QUOTATION_REFRESH_TOKEN_TTL_MINUTES" default:"1440"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"QUOTATION_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"QUOTATION_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"QUOTATION_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"QUOTATION_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"QUOTATION_ARGON_KEY_LEN" default:"32"`
}

// QuoteConfig controls quote number formatting: <prefix>/<year>/<seq %03d>.
type QuoteConfig struct {
	NumberPrefix string `envconfig:"QUOTATION_QUOTE_NUMBER_PREFIX" default:"QTN/TEST"`
}

// DraftConfig bounds how long an abandoned editing session is retained.
type DraftConfig struct {
	TTL time.Duration `envconfig:"QUOTATION_DRAFT_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"QUOTATION_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, val := range map[string]string{
		"QUOTATION_DB_HOST": db.Host,
		"QUOTATION_DB_USER": db.User,
		"QUOTATION_DB_NAME": db.Name,
	} {
		if val == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either QUOTATION_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

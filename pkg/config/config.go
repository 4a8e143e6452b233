package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	OpenAI        OpenAIConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"CRYPTOGEAR_APP_ENV" required:"true"`
	Port         string `envconfig:"CRYPTOGEAR_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"CRYPTOGEAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CRYPTOGEAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CRYPTOGEAR_DB_DSN"`

	Host     string `envconfig:"CRYPTOGEAR_DB_HOST"`
	Port     int    `envconfig:"CRYPTOGEAR_DB_PORT" default:"5432"`
	User     string `envconfig:"CRYPTOGEAR_DB_USER"`
	Password string `envconfig:"CRYPTOGEAR_DB_PASSWORD"`
	Name     string `envconfig:"CRYPTOGEAR_DB_NAME"`
	SSLMode  string `envconfig:"CRYPTOGEAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CRYPTOGEAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CRYPTOGEAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CRYPTOGEAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CRYPTOGEAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name settings are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"CRYPTOGEAR_REDIS_URL"`
	Address      string        `envconfig:"CRYPTOGEAR_REDIS_ADDR"`
	Password     string        `envconfig:"CRYPTOGEAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"CRYPTOGEAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CRYPTOGEAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CRYPTOGEAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CRYPTOGEAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CRYPTOGEAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CRYPTOGEAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CRYPTOGEAR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CRYPTOGEAR_JWT_ISSUER" default:"cryptogear"`
	ExpirationMinutes int    `envconfig:"CRYPTOGEAR_JWT_EXPIRATION_MINUTES" default:"1440"`
	SessionTTLMinutes int    `envconfig:"CRYPTOGEAR_SESSION_TTL_MINUTES" default:"2880"`
}

// SessionTTL returns how long the Redis session record outlives its token.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CRYPTOGEAR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CRYPTOGEAR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CRYPTOGEAR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CRYPTOGEAR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CRYPTOGEAR_ARGON_KEY_LEN" default:"32"`
}

type OpenAIConfig struct {
	APIKey  string `envconfig:"CRYPTOGEAR_OPENAI_API_KEY"`
	Model   string `envconfig:"CRYPTOGEAR_OPENAI_MODEL" default:"gpt-4o-mini"`
	BaseURL string `envconfig:"CRYPTOGEAR_OPENAI_BASE_URL"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"CRYPTOGEAR_RL_LOGIN_WINDOW" default:"5m"`
	LoginIPLimit    int           `envconfig:"CRYPTOGEAR_RL_LOGIN_IP_LIMIT" default:"20"`
	LoginEmailLimit int           `envconfig:"CRYPTOGEAR_RL_LOGIN_EMAIL_LIMIT" default:"10"`

	RegisterWindow     time.Duration `envconfig:"CRYPTOGEAR_RL_REGISTER_WINDOW" default:"15m"`
	RegisterIPLimit    int           `envconfig:"CRYPTOGEAR_RL_REGISTER_IP_LIMIT" default:"10"`
	RegisterEmailLimit int           `envconfig:"CRYPTOGEAR_RL_REGISTER_EMAIL_LIMIT" default:"5"`
}

type CORSConfig struct {
	Origins []string `envconfig:"CRYPTOGEAR_CORS_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CRYPTOGEAR_FEATURE_AUTO_MIGRATE" default:"false"`
}

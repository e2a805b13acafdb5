package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "SUGESTAO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Gateway backend kinds. Exactly one is active per deployment.
const (
	GatewayKindRest     = "rest"
	GatewayKindEmbedded = "embedded"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	API      APIClientConfig
	Gateway  GatewayConfig
	Cache    CacheConfig
	Retry    RetryConfig
	Password PasswordConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Gateway.validate(); err != nil {
		return nil, err
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SUGESTAO_APP_ENV" default:"dev"`
	Port         string `envconfig:"SUGESTAO_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"SUGESTAO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SUGESTAO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"SUGESTAO_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SUGESTAO_DB_DSN" default:"sugestao.db"`

	MaxOpenConns    int           `envconfig:"SUGESTAO_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SUGESTAO_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SUGESTAO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SUGESTAO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d DBConfig) validate() error {
	switch d.Driver {
	case "sqlite", "postgres":
		return nil
	}
	return fmt.Errorf("unsupported db driver %q", d.Driver)
}

// APIClientConfig configures the REST gateway's connection to the intake API.
type APIClientConfig struct {
	BaseURL string        `envconfig:"SUGESTAO_API_BASE" default:"http://127.0.0.1:8000"`
	Token   string        `envconfig:"SUGESTAO_API_TOKEN"`
	Timeout time.Duration `envconfig:"SUGESTAO_API_TIMEOUT" default:"10s"`
}

type GatewayConfig struct {
	Kind string `envconfig:"SUGESTAO_GATEWAY_KIND" default:"rest"`
}

func (g GatewayConfig) validate() error {
	switch g.Kind {
	case GatewayKindRest, GatewayKindEmbedded:
		return nil
	}
	return fmt.Errorf("unsupported gateway kind %q", g.Kind)
}

type CacheConfig struct {
	HealthTTL  time.Duration `envconfig:"SUGESTAO_CACHE_HEALTH_TTL" default:"15s"`
	DatasetTTL time.Duration `envconfig:"SUGESTAO_CACHE_DATASET_TTL" default:"30s"`
}

type RetryConfig struct {
	InsertAttempts int           `envconfig:"SUGESTAO_INSERT_RETRY_ATTEMPTS" default:"5"`
	InsertBackoff  time.Duration `envconfig:"SUGESTAO_INSERT_RETRY_BACKOFF" default:"500ms"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SUGESTAO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SUGESTAO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SUGESTAO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SUGESTAO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SUGESTAO_ARGON_KEY_LEN" default:"32"`

	// AllowLegacyPlaintext enables plain string comparison against stored
	// credentials that are not argon2id hashes. Migration aid only; every
	// legacy match is logged so operators can see the downgrade.
	AllowLegacyPlaintext bool `envconfig:"SUGESTAO_ALLOW_LEGACY_PLAINTEXT" default:"false"`
}

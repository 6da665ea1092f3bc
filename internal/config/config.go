package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// DeploymentMode switches environment-dependent behavior such as error detail
// exposure.
type DeploymentMode string

const (
	ModeDevelopment DeploymentMode = "development"
	ModeProduction  DeploymentMode = "production"
)

type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Auth       AuthConfig       `mapstructure:"auth"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Exchange   ExchangeConfig   `mapstructure:"exchange"`
	Sweeper    SweeperConfig    `mapstructure:"sweeper"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
}

type DeploymentConfig struct {
	Mode DeploymentMode `mapstructure:"mode" default:"development"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" default:"0.0.0.0"`
	Port    int    `mapstructure:"port" default:"8080"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"5432"`
	User     string `mapstructure:"user" default:"postgres"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname" default:"gymmawy"`
	SSLMode  string `mapstructure:"sslmode" default:"disable"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address" default:"localhost:6379"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Type string `mapstructure:"type" default:"inmemory"`
}

type AuthConfig struct {
	Secret     string        `mapstructure:"secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl" default:"24h"`
	CronSecret string        `mapstructure:"cron_secret"`
}

type RateLimitConfig struct {
	Enabled     bool          `mapstructure:"enabled" default:"true"`
	MaxRequests int           `mapstructure:"max_requests" default:"300"`
	Window      time.Duration `mapstructure:"window" default:"15m"`
}

type ExchangeConfig struct {
	APIURL  string        `mapstructure:"api_url" default:"https://api.exchangerate-api.com/v4/latest/USD"`
	Timeout time.Duration `mapstructure:"timeout" default:"5s"`
}

type SweeperConfig struct {
	Enabled        bool          `mapstructure:"enabled" default:"true"`
	HourlyInterval time.Duration `mapstructure:"hourly_interval" default:"1h"`
	DailyInterval  time.Duration `mapstructure:"daily_interval" default:"24h"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" default:"info"`
}

type SentryConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	DSN        string  `mapstructure:"dsn"`
	SampleRate float64 `mapstructure:"sample_rate" default:"1.0"`
}

// NewConfig loads configuration from the environment, a `.env` file when
// present, and defaults.
func NewConfig() (*Configuration, error) {
	// Ignore the error: a missing .env file is the normal production case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GYMMAWY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Configuration{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(ModeDevelopment))
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.dbname", "gymmawy")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("cache.type", "inmemory")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.max_requests", 300)
	v.SetDefault("rate_limit.window", "15m")
	v.SetDefault("exchange.api_url", "https://api.exchangerate-api.com/v4/latest/USD")
	v.SetDefault("exchange.timeout", "5s")
	v.SetDefault("sweeper.enabled", true)
	v.SetDefault("sweeper.hourly_interval", "1h")
	v.SetDefault("sweeper.daily_interval", "24h")
	v.SetDefault("logging.level", "info")
	v.SetDefault("sentry.sample_rate", 1.0)
}

func (c *Configuration) Validate() error {
	if c.Auth.Secret == "" && c.Deployment.Mode == ModeProduction {
		return ierr.NewError("auth secret is required in production").
			WithHint("Set GYMMAWY_AUTH_SECRET").
			Mark(ierr.ErrValidation)
	}
	if c.RateLimit.MaxRequests <= 0 {
		return ierr.NewError("rate limit max requests must be positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Configuration) IsDevelopment() bool {
	return c.Deployment.Mode != ModeProduction
}

// FallbackExchangeRates are the fixed currency -> USD rates used by admin
// reporting when the live exchange-rate API is unreachable. Purchase-time
// pricing never converts between currencies; these rates exist only for
// aggregate totals.
func FallbackExchangeRates() map[types.Currency]decimal.Decimal {
	return map[types.Currency]decimal.Decimal{
		types.CurrencyEGP: decimal.NewFromFloat(0.032),
		types.CurrencySAR: decimal.NewFromFloat(0.27),
		types.CurrencyAED: decimal.NewFromFloat(0.27),
		types.CurrencyUSD: decimal.NewFromInt(1),
	}
}

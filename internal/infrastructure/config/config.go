package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	LogFile    string `env:"LOG_FILE"`
	AdminEmail string `env:"ADMIN_EMAIL"`

	Session  SessionConfig
	Payment  PaymentConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	S3       S3Config
}

type SessionConfig struct {
	Secret             string        `env:"SESSION_SECRET,        required"`
	TTL                time.Duration `env:"SESSION_TTL,           default=24h"`
	CookieSecure       bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	PasswordIterations int           `env:"PASSWORD_ITERATIONS,   default=600000"`
}

type PaymentConfig struct {
	APIKey         string        `env:"PAYMENT_API_KEY,        required"`
	Timeout        time.Duration `env:"PAYMENT_TIMEOUT,        default=10s"`
	Currency       string        `env:"PAYMENT_CURRENCY,       default=usd"`
	Country        string        `env:"PAYMENT_COUNTRY,        default=US"`
	ApplicationFee int64         `env:"APPLICATION_FEE_MINOR,  default=123"`
	SuccessURL     string        `env:"CHECKOUT_SUCCESS_URL,   default=http://localhost:8080/checkout/success?session_id={CHECKOUT_SESSION_ID}"`
	CancelURL      string        `env:"CHECKOUT_CANCEL_URL,    default=http://localhost:8080/checkout/cancel"`
	RefreshURL     string        `env:"ONBOARDING_REFRESH_URL, default=http://localhost:8080/"`
	ReturnURL      string        `env:"ONBOARDING_RETURN_URL,  default=http://localhost:8080/"`
	BusinessURL    string        `env:"BUSINESS_PROFILE_URL"`
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER,    default=sqlite"`
	URL    string `env:"DATABASE_URL, default=marketplace.db"`
	Debug  bool   `env:"DB_DEBUG,     default=false"`
}

// MongoConfig enables the checkout audit trail when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=marketplace"`
}

func (c MongoConfig) Enabled() bool { return c.URI != "" }

// RedisConfig enables checkout replay and session revocation when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT,     default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM,     default=no-reply@localhost"`
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" }

type S3Config struct {
	Region          string `env:"AWS_REGION,    default=us-east-1"`
	Bucket          string `env:"AWS_S3_BUCKET"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"AWS_S3_ENDPOINT"`
}

func (c S3Config) Enabled() bool { return c.Bucket != "" }

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate rejects settings that would only fail later at runtime.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Payment.ApplicationFee < 0 {
		return fmt.Errorf("APPLICATION_FEE_MINOR must not be negative")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Payment.Timeout <= 0 {
		return fmt.Errorf("PAYMENT_TIMEOUT must be positive")
	}
	return nil
}

// Load reads a .env file when present and then the process environment.
// SESSION_SECRET and PAYMENT_API_KEY are required.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

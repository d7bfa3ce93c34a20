package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/logiport/portal/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment   DeploymentConfig   `validate:"required"`
	Server       ServerConfig       `validate:"required"`
	Logging      LoggingConfig      `validate:"required"`
	Postgres     PostgresConfig     `validate:"required"`
	Auth         AuthConfig         `validate:"required"`
	Email        EmailConfig        `mapstructure:"email"`
	Notification NotificationConfig `validate:"required"`
	S3           S3Config           `mapstructure:"s3"`
	Sentry       SentryConfig       `mapstructure:"sentry"`
	Dashboard    DashboardConfig    `validate:"required"`
	RBAC         RBACConfig         `mapstructure:"rbac"`
	Cache        CacheConfig        `mapstructure:"cache"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address        string   `validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`

	// SlowQueryThreshold logs statements slower than this at warn level; zero disables
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
}

type AuthConfig struct {
	// Secret verifies HS256 tokens issued by the authentication service
	Secret string `validate:"required"`
}

type EmailConfig struct {
	Enabled     bool
	APIKey      string        `mapstructure:"api_key"`
	FromAddress string        `mapstructure:"from_address"`
	ReplyTo     string        `mapstructure:"reply_to"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type NotificationConfig struct {
	OnFailure types.NotificationFailurePolicy `mapstructure:"on_failure" validate:"required,oneof=raise log_only"`
}

type S3Config struct {
	Enabled       bool
	Region        string
	Bucket        string
	KeyPrefix     string        `mapstructure:"key_prefix"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type DashboardConfig struct {
	RecentActivityLimit int                `mapstructure:"recent_activity_limit" validate:"min=1"`
	RecentShipmentLimit int                `mapstructure:"recent_shipment_limit" validate:"min=1"`
	RecentDocumentLimit int                `mapstructure:"recent_document_limit" validate:"min=1"`
	SeriesMonths        int                `mapstructure:"series_months" validate:"min=1,max=24"`
	SeriesSource        types.SeriesSource `mapstructure:"series_source" validate:"required,oneof=live placeholder"`
}

type CacheConfig struct {
	Enabled bool
}

type RBACConfig struct {
	RolesConfigPath string `mapstructure:"roles_config_path"`
}

func NewConfig() (*Configuration, error) {
	// A missing .env file is fine, values may come from the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/logiport")

	v.SetEnvPrefix("LOGIPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("logging.level", types.LogLevelInfo)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 60)
	v.SetDefault("postgres.slow_query_threshold", 500*time.Millisecond)

	v.SetDefault("email.timeout", 10*time.Second)
	v.SetDefault("notification.on_failure", types.NotificationFailureRaise)

	v.SetDefault("s3.presign_expiry", 30*time.Minute)
	v.SetDefault("cache.enabled", true)

	v.SetDefault("sentry.sample_rate", 1.0)

	v.SetDefault("dashboard.recent_activity_limit", 10)
	v.SetDefault("dashboard.recent_shipment_limit", 5)
	v.SetDefault("dashboard.recent_document_limit", 5)
	v.SetDefault("dashboard.series_months", 7)
	v.SetDefault("dashboard.series_source", types.SeriesSourceLive)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Email: EmailConfig{
			Timeout: 10 * time.Second,
		},
		Notification: NotificationConfig{OnFailure: types.NotificationFailureRaise},
		Dashboard: DashboardConfig{
			RecentActivityLimit: 10,
			RecentShipmentLimit: 5,
			RecentDocumentLimit: 5,
			SeriesMonths:        7,
			SeriesSource:        types.SeriesSourceLive,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

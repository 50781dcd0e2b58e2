package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Processor    ProcessorConfig    `mapstructure:"processor"`
	LMS          LMSConfig          `mapstructure:"lms"`
	Provisioning ProvisioningConfig `mapstructure:"provisioning"`
	Notifier     NotifierConfig     `mapstructure:"notifier"`
	Ops          OpsConfig          `mapstructure:"ops"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ProcessorConfig holds the payment processor credentials and tuning.
// APIKey doubles as the shared signing secret for requests and webhooks.
type ProcessorConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	APILogin   string        `mapstructure:"api_login"`
	MerchantID string        `mapstructure:"merchant_id"`
	AccountID  string        `mapstructure:"account_id"`
	Sandbox    bool          `mapstructure:"sandbox"`
	TaxRate    float64       `mapstructure:"tax_rate"` // amounts are tax-inclusive at this rate
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LMSConfig holds the learning management system web-service settings.
type LMSConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Token       string        `mapstructure:"token"`
	CategoryID  int64         `mapstructure:"category_id"`   // default enrollment catalog
	EnrolRoleID int64         `mapstructure:"enrol_role_id"` // student role
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ProvisioningConfig tunes the LMS account provisioning worker.
type ProvisioningConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	Backoff     time.Duration `mapstructure:"backoff"`
	QueueSize   int           `mapstructure:"queue_size"`
}

// NotifierConfig describes the platform callback for payment state changes.
type NotifierConfig struct {
	CallbackURL string `mapstructure:"callback_url"` // empty = notifications disabled
	Secret      string `mapstructure:"secret"`
}

// OpsConfig holds operator-dashboard authentication settings.
type OpsConfig struct {
	PasswordHash string        `mapstructure:"password_hash"` // argon2id encoded hash
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiry    time.Duration `mapstructure:"jwt_expiry"`
	JWTIssuer    string        `mapstructure:"jwt_issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: EPS_ (EduPay Service).
// Nested keys use underscore: EPS_DATABASE_HOST, EPS_PROCESSOR_API_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "edupay")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("processor.base_url", "https://sandbox.api.payments.example/v4.0/service.cgi")
	v.SetDefault("processor.api_key", "")
	v.SetDefault("processor.api_login", "")
	v.SetDefault("processor.merchant_id", "")
	v.SetDefault("processor.account_id", "")
	v.SetDefault("processor.sandbox", true)
	v.SetDefault("processor.tax_rate", 0.19)
	v.SetDefault("processor.timeout", "15s")
	v.SetDefault("lms.base_url", "")
	v.SetDefault("lms.token", "")
	v.SetDefault("lms.category_id", 1)
	v.SetDefault("lms.enrol_role_id", 5)
	v.SetDefault("lms.timeout", "20s")
	v.SetDefault("provisioning.max_attempts", 3)
	v.SetDefault("provisioning.backoff", "30s")
	v.SetDefault("provisioning.queue_size", 256)
	v.SetDefault("notifier.callback_url", "")
	v.SetDefault("notifier.secret", "")
	v.SetDefault("ops.password_hash", "")
	v.SetDefault("ops.jwt_secret", "")
	v.SetDefault("ops.jwt_expiry", "12h")
	v.SetDefault("ops.jwt_issuer", "edupay-service")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: EPS_PROCESSOR_API_KEY -> processor.api_key
	v.SetEnvPrefix("EPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars can supply everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	OTP      OTPConfig      `mapstructure:"otp"`
	SMS      SMSConfig      `mapstructure:"sms"`
	Offers   OffersConfig   `mapstructure:"offers"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// IsProduction reports whether the process runs with production settings.
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int `mapstructure:"write_timeout"` // seconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig selects the backing store per entity. The lead state machine
// and the offer catalog are written against store interfaces; the deployment
// picks the implementation here.
type StorageConfig struct {
	Leads  string `mapstructure:"leads"`  // "memory" or "redis"
	Offers string `mapstructure:"offers"` // "memory" or "postgres"
}

// OTPConfig controls passcode issuance and verification.
type OTPConfig struct {
	TTLSeconds        int    `mapstructure:"ttl_seconds"`
	MaxVerifyAttempts int    `mapstructure:"max_verify_attempts"`
	MaxResendsPerHour int    `mapstructure:"max_resends_per_hour"`
	DevBypassCode     string `mapstructure:"dev_bypass_code"` // never honored in production
}

// SMSConfig selects the OTP delivery channel.
type SMSConfig struct {
	Provider  string `mapstructure:"provider"` // "log" or "sns"
	AWSRegion string `mapstructure:"aws_region"`
	SenderID  string `mapstructure:"sender_id"`
}

// OffersConfig points at an optional operator-supplied seed file. When empty
// the built-in reference table is used.
type OffersConfig struct {
	SeedFile string `mapstructure:"seed_file"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

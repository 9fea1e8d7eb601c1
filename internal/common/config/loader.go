// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SMS_AWS_REGION
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, e.g. config.production.yaml
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from a few locations so binaries and tests can run
// from nested directories.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "leadgen-backend"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Storage.Leads == "" {
		cfg.Storage.Leads = "memory"
	}
	if cfg.Storage.Offers == "" {
		cfg.Storage.Offers = "memory"
	}
	if cfg.OTP.TTLSeconds == 0 {
		cfg.OTP.TTLSeconds = 300 // 5 minutes, matching the SMS copy
	}
	if cfg.OTP.MaxVerifyAttempts == 0 {
		cfg.OTP.MaxVerifyAttempts = 5
	}
	if cfg.OTP.MaxResendsPerHour == 0 {
		cfg.OTP.MaxResendsPerHour = 6
	}
	if cfg.SMS.Provider == "" {
		cfg.SMS.Provider = "log"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Storage.Leads {
	case "memory", "redis":
	default:
		return fmt.Errorf("storage.leads: unknown backend %q", cfg.Storage.Leads)
	}
	switch cfg.Storage.Offers {
	case "memory", "postgres":
	default:
		return fmt.Errorf("storage.offers: unknown backend %q", cfg.Storage.Offers)
	}
	if cfg.Storage.Leads == "redis" && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("storage.leads=redis requires database.redis.address")
	}
	if cfg.Storage.Offers == "postgres" && cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("storage.offers=postgres requires database.postgres.host")
	}
	switch cfg.SMS.Provider {
	case "log", "sns":
	default:
		return fmt.Errorf("sms.provider: unknown provider %q", cfg.SMS.Provider)
	}
	if cfg.SMS.Provider == "sns" && cfg.SMS.AWSRegion == "" {
		return fmt.Errorf("sms.provider=sns requires sms.aws_region")
	}
	if cfg.App.IsProduction() && cfg.OTP.DevBypassCode != "" {
		return fmt.Errorf("otp.dev_bypass_code must not be set in production")
	}
	return nil
}

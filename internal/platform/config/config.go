package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	// OverdraftPolicy is "allow" or "deny". Cash accounts are always denied
	// overdraft regardless of this setting.
	OverdraftPolicy string `mapstructure:"OVERDRAFT_POLICY"`

	// AllowPeriodReopen gates the reopen-period admin operation.
	AllowPeriodReopen bool `mapstructure:"ALLOW_PERIOD_REOPEN"`

	// AutoLockDay is the default day of the following month on which a
	// period is locked automatically. Zero disables auto-locking.
	AutoLockDay int `mapstructure:"AUTO_LOCK_DAY"`

	RateLimitRate string `mapstructure:"RATE_LIMIT_RATE"`
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// LoadConfig loads configuration from .env file and environment variables.
// Environment variables take precedence over the .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("OVERDRAFT_POLICY", "allow")
	v.SetDefault("ALLOW_PERIOD_REOPEN", false)
	v.SetDefault("AUTO_LOCK_DAY", 0)
	v.SetDefault("RATE_LIMIT_RATE", "100-M")

	// AutomaticEnv alone does not populate Unmarshal; bind each key explicitly.
	for _, key := range []string{
		"DATABASE_URL", "PORT", "ENVIRONMENT", "JWT_SECRET",
		"OVERDRAFT_POLICY", "ALLOW_PERIOD_REOPEN", "AUTO_LOCK_DAY", "RATE_LIMIT_RATE",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env var %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.OverdraftPolicy != "allow" && cfg.OverdraftPolicy != "deny" {
		return nil, fmt.Errorf("OVERDRAFT_POLICY must be \"allow\" or \"deny\", got %q", cfg.OverdraftPolicy)
	}

	return &cfg, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration, loaded once at startup and passed
// into the layers that need it. Business logic never reads viper directly.
type Config struct {
	Port      string
	LogLevel  string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
}

const (
	defaultPort     = "8080"
	defaultLogLevel = "info"
	defaultDBPath   = "catalog.db"
	defaultTTLHours = 24
)

// Load reads configs/config.yml and environment overrides into a Config.
// JWT_SECRET from the environment takes precedence over the file so the
// secret can stay out of version control.
func Load() (*Config, error) {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("port", defaultPort)
	viper.SetDefault("log_level", defaultLogLevel)
	viper.SetDefault("db.path", defaultDBPath)
	viper.SetDefault("jwt.ttl_hours", defaultTTLHours)

	if err := viper.BindEnv("jwt.secret", "JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("bind JWT_SECRET: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{
		Port:      viper.GetString("port"),
		LogLevel:  viper.GetString("log_level"),
		DBPath:    viper.GetString("db.path"),
		JWTSecret: viper.GetString("jwt.secret"),
		TokenTTL:  time.Duration(viper.GetInt("jwt.ttl_hours")) * time.Hour,
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt.secret is not set (config file or JWT_SECRET env)")
	}
	return cfg, nil
}

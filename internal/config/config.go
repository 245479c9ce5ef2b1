package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv string `mapstructure:"APP_ENV"`

	HTTPHost string `mapstructure:"HTTP_HOST"`
	HTTPPort string `mapstructure:"HTTP_PORT"`

	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogFormat    string `mapstructure:"LOG_FORMAT"`
	LogComponent string `mapstructure:"LOG_COMPONENT"`
	LogSource    bool   `mapstructure:"LOG_SOURCE"`

	// DBDSN wins when set; otherwise a MySQL DSN is assembled from the
	// discrete DB_* values. Prefix with sqlite:// to use a SQLite file.
	DBDSN      string `mapstructure:"DB_DSN"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

func Load() (*Config, error) {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("HTTP_HOST", "0.0.0.0")
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_COMPONENT", "http_server")
	viper.SetDefault("LOG_SOURCE", false)
	viper.SetDefault("DB_DSN", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_USER", "root")
	viper.SetDefault("DB_PASSWORD", "root")
	viper.SetDefault("DB_NAME", "kindling")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.AutomaticEnv()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.DBDSN == "" {
		cfg.DBDSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
	}

	return cfg, nil
}

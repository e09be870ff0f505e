package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. GF_FILTER_API_PORT.
const EnvPrefix = "GF"

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence; flags are
// applied by the caller on the returned value.
func LoadConfig(configPath string) (*FilterAPIConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultFilterAPIConfig
	d := DefaultFilterAPIConfig()
	v.SetDefault("filter_api.host", d.Host)
	v.SetDefault("filter_api.port", d.Port)
	v.SetDefault("filter_api.max_connections", d.MaxConnections)
	v.SetDefault("filter_api.request_timeout", d.RequestTimeout.String())
	v.SetDefault("filter_api.max_results", d.MaxResults)
	v.SetDefault("filter_api.data_dir", d.DataDir)
	v.SetDefault("filter_api.graph_file", "")
	v.SetDefault("database.url", d.DatabaseURL)
	v.SetDefault("log.level", d.LogLevel)
	v.SetDefault("log.format", d.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Credentials must be environment-only per 12-factor principles
		if err := validateNoPasswordInConfig(configPath); err != nil {
			return nil, err
		}
	}

	cfg := &FilterAPIConfig{
		Host:           v.GetString("filter_api.host"),
		Port:           v.GetInt("filter_api.port"),
		MaxConnections: v.GetInt("filter_api.max_connections"),
		RequestTimeout: v.GetDuration("filter_api.request_timeout"),
		MaxResults:     v.GetInt("filter_api.max_results"),
		DataDir:        v.GetString("filter_api.data_dir"),
		GraphFile:      v.GetString("filter_api.graph_file"),
		DatabaseURL:    v.GetString("database.url"),
		LogLevel:       v.GetString("log.level"),
		LogFormat:      v.GetString("log.format"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks port range, positive limits and known log settings.
func validateConfig(cfg *FilterAPIConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.MaxConnections <= 0 {
		return fmt.Errorf("max_connections must be positive, got %d", cfg.MaxConnections)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.RequestTimeout)
	}
	if cfg.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive, got %d", cfg.MaxResults)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", cfg.LogFormat)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.LogLevel)
	}
	return nil
}

// validateNoPasswordInConfig rejects database URLs with embedded passwords in
// config files. The file is read on its own so an environment override does
// not mask what the file contains.
func validateNoPasswordInConfig(configPath string) error {
	file := viper.New()
	file.SetConfigFile(configPath)
	if err := file.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	raw := file.GetString("database.url")
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid database.url in config file: %w", err)
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		return fmt.Errorf("database passwords not allowed in config files (use GF_DATABASE_URL environment variable)")
	}
	return nil
}

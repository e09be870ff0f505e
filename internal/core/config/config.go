// Package config provides configuration management for graphfilter services.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// FilterAPIConfig holds configuration for the gRPC filter service and the
// commands that share its database and logging settings.
type FilterAPIConfig struct {
	Host           string
	Port           int
	MaxConnections int
	RequestTimeout time.Duration
	MaxResults     int
	DataDir        string

	// GraphFile, when set, makes the service load its graph from a YAML
	// document instead of the database.
	GraphFile string

	DatabaseURL string
	LogLevel    string
	LogFormat   string
}

// DefaultFilterAPIConfig returns configuration with default values.
func DefaultFilterAPIConfig() *FilterAPIConfig {
	return &FilterAPIConfig{
		Host:           "0.0.0.0",
		Port:           50061,
		MaxConnections: 1000,
		RequestTimeout: 30 * time.Second,
		MaxResults:     10000,
		DataDir:        "./data",
		DatabaseURL:    "sqlite://./data/graphfilter.db",
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

// Addr returns the host:port listen address.
func (c *FilterAPIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedactedDatabaseURL returns DatabaseURL with any password masked, for logs.
func (c *FilterAPIConfig) RedactedDatabaseURL() string {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return "<invalid>"
	}
	return u.Redacted()
}

// Package config resolves runtime configuration from an optional YAML file
// and environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime settings of the calendar service.
type Config struct {
	// HTTPPort is the port the JSON API listens on.
	HTTPPort int `yaml:"http_port"`
	// SQLiteDSN locates the durable slot database.
	SQLiteDSN string `yaml:"sqlite_dsn"`
	// ShareParam names the query parameter carrying incoming share tokens.
	ShareParam string `yaml:"share_param"`
}

// Load resolves configuration in two layers: the YAML file named by
// CRUZE_CONFIG (when set), then individual environment overrides. Defaults
// apply for everything left unset; invalid values are collected and reported
// together.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:   8080,
		SQLiteDSN:  "file:cruze.db?_pragma=busy_timeout(5000)",
		ShareParam: "share",
	}

	if path := strings.TrimSpace(os.Getenv("CRUZE_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	invalid := make([]string, 0, 1)

	if portValue := strings.TrimSpace(os.Getenv("CRUZE_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "CRUZE_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("CRUZE_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if param := strings.TrimSpace(os.Getenv("CRUZE_SHARE_PARAM")); param != "" {
		cfg.ShareParam = param
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("config: invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// Package config loads application configuration from a YAML file or
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Store  StoreConfig  `yaml:"store"`
	Gate   GateConfig   `yaml:"gate"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Addr string `yaml:"addr"` // listen address, e.g. ":8080"
}

// AuthConfig represents the Firebase Auth configuration
type AuthConfig struct {
	ProjectID   string `yaml:"project_id"`
	Credentials string `yaml:"credentials,omitempty"` // service account JSON path
	TenantID    string `yaml:"tenant_id,omitempty"`   // Identity Platform tenant
}

// StoreConfig represents the Firestore user-store configuration
type StoreConfig struct {
	ProjectID   string `yaml:"project_id"`
	Database    string `yaml:"database,omitempty"`
	Credentials string `yaml:"credentials,omitempty"`
	Collection  string `yaml:"collection,omitempty"` // defaults to "users"
}

// GateConfig represents the gate's authorization configuration
type GateConfig struct {
	AllowedRoles []string `yaml:"allowed_roles"`
}

// Load reads configuration from the specified YAML file, then applies
// environment variable overrides. An empty path delegates to LoadFromEnv.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv builds configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Addr: ":8080"},
		Gate:   GateConfig{AllowedRoles: []string{"admin", "moderator"}},
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides config values with ROLEGATE_* environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv("ROLEGATE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ROLEGATE_AUTH_PROJECT_ID"); v != "" {
		c.Auth.ProjectID = v
	}
	if v := os.Getenv("ROLEGATE_AUTH_CREDENTIALS"); v != "" {
		c.Auth.Credentials = v
	}
	if v := os.Getenv("ROLEGATE_AUTH_TENANT_ID"); v != "" {
		c.Auth.TenantID = v
	}
	if v := os.Getenv("ROLEGATE_STORE_PROJECT_ID"); v != "" {
		c.Store.ProjectID = v
	}
	if v := os.Getenv("ROLEGATE_STORE_DATABASE"); v != "" {
		c.Store.Database = v
	}
	if v := os.Getenv("ROLEGATE_STORE_CREDENTIALS"); v != "" {
		c.Store.Credentials = v
	}
	if v := os.Getenv("ROLEGATE_STORE_COLLECTION"); v != "" {
		c.Store.Collection = v
	}
	if v := os.Getenv("ROLEGATE_ALLOWED_ROLES"); v != "" {
		roles := []string{}
		for _, role := range strings.Split(v, ",") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}
		c.Gate.AllowedRoles = roles
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if c.Auth.ProjectID == "" {
		return fmt.Errorf("auth.project_id is required")
	}

	if c.Store.ProjectID == "" {
		return fmt.Errorf("store.project_id is required")
	}

	if len(c.Gate.AllowedRoles) == 0 {
		return fmt.Errorf("gate.allowed_roles must contain at least one role")
	}

	for i, role := range c.Gate.AllowedRoles {
		if strings.TrimSpace(role) == "" {
			return fmt.Errorf("gate.allowed_roles[%d] is empty", i)
		}
	}

	return nil
}

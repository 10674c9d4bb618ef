package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const validYAML = `
server:
  addr: ":9090"
auth:
  project_id: test-project
  tenant_id: tenant-1
store:
  project_id: test-project
  database: gate-db
  collection: members
gate:
  allowed_roles: [admin, moderator]
`

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Auth.ProjectID != "test-project" {
		t.Errorf("expected auth project test-project, got %s", cfg.Auth.ProjectID)
	}
	if cfg.Auth.TenantID != "tenant-1" {
		t.Errorf("expected tenant tenant-1, got %s", cfg.Auth.TenantID)
	}
	if cfg.Store.Collection != "members" {
		t.Errorf("expected collection members, got %s", cfg.Store.Collection)
	}
	if len(cfg.Gate.AllowedRoles) != 2 || cfg.Gate.AllowedRoles[0] != "admin" {
		t.Errorf("unexpected allowed roles: %v", cfg.Gate.AllowedRoles)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/no/such/config.yaml")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not: valid")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for invalid YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	t.Setenv("ROLEGATE_ADDR", ":7070")
	t.Setenv("ROLEGATE_ALLOWED_ROLES", "admin, auditor ,")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":7070" {
		t.Errorf("expected env override :7070, got %s", cfg.Server.Addr)
	}
	if len(cfg.Gate.AllowedRoles) != 2 || cfg.Gate.AllowedRoles[1] != "auditor" {
		t.Errorf("expected roles [admin auditor], got %v", cfg.Gate.AllowedRoles)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ROLEGATE_AUTH_PROJECT_ID", "env-project")
	t.Setenv("ROLEGATE_STORE_PROJECT_ID", "env-project")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	// Defaults apply where no env var is set
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if len(cfg.Gate.AllowedRoles) != 2 {
		t.Errorf("expected default allowed roles, got %v", cfg.Gate.AllowedRoles)
	}
}

func TestLoad_EmptyPathDelegatesToEnv(t *testing.T) {
	t.Setenv("ROLEGATE_AUTH_PROJECT_ID", "env-project")
	t.Setenv("ROLEGATE_STORE_PROJECT_ID", "env-project")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Auth.ProjectID != "env-project" {
		t.Errorf("expected env-project, got %s", cfg.Auth.ProjectID)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Addr: ":8080"},
			Auth:   AuthConfig{ProjectID: "p"},
			Store:  StoreConfig{ProjectID: "p"},
			Gate:   GateConfig{AllowedRoles: []string{"admin"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: "server.addr",
		},
		{
			name:    "missing auth project",
			mutate:  func(c *Config) { c.Auth.ProjectID = "" },
			wantErr: "auth.project_id",
		},
		{
			name:    "missing store project",
			mutate:  func(c *Config) { c.Store.ProjectID = "" },
			wantErr: "store.project_id",
		},
		{
			name:    "empty role set",
			mutate:  func(c *Config) { c.Gate.AllowedRoles = nil },
			wantErr: "allowed_roles",
		},
		{
			name:    "blank role",
			mutate:  func(c *Config) { c.Gate.AllowedRoles = []string{"admin", " "} },
			wantErr: "allowed_roles[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

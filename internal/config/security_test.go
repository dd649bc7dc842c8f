package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "security.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadSecurityConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid static provider",
			yaml: `
security:
  auth:
    provider: static
    static:
      min_password_length: 12
      weak_passwords:
        - password123
  public_endpoints:
    - /auth/token
    - /health
  jwt:
    secret_env: JWT_SECRET
    expiry_hours: 1
`,
		},
		{
			name: "missing provider",
			yaml: `
security:
  jwt:
    secret_env: JWT_SECRET
    expiry_hours: 1
`,
			wantErr: "auth provider is required",
		},
		{
			name: "password length below minimum",
			yaml: `
security:
  auth:
    provider: static
    static:
      min_password_length: 4
  jwt:
    secret_env: JWT_SECRET
    expiry_hours: 1
`,
			wantErr: "min_password_length must be at least 8",
		},
		{
			name: "missing jwt secret env",
			yaml: `
security:
  auth:
    provider: static
    static:
      min_password_length: 8
  jwt:
    expiry_hours: 1
`,
			wantErr: "jwt secret_env is required",
		},
		{
			name: "non-positive expiry",
			yaml: `
security:
  auth:
    provider: static
    static:
      min_password_length: 8
  jwt:
    secret_env: JWT_SECRET
    expiry_hours: 0
`,
			wantErr: "jwt expiry_hours must be positive",
		},
		{
			name:    "invalid yaml",
			yaml:    "security: [unclosed",
			wantErr: "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)
			cfg, err := LoadSecurityConfig(path)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadSecurityConfig() error = %v", err)
			}
			if cfg.AuthProvider() != "static" {
				t.Errorf("AuthProvider() = %q, want static", cfg.AuthProvider())
			}
		})
	}
}

func TestLoadSecurityConfig_MissingFile(t *testing.T) {
	_, err := LoadSecurityConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %v, want read failure", err)
	}
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	if err := validateSecurityConfig(cfg); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.JWTSecretEnv() != "JWT_SECRET" {
		t.Errorf("JWTSecretEnv() = %q, want JWT_SECRET", cfg.JWTSecretEnv())
	}
	if cfg.JWTExpiryHours() != 1 {
		t.Errorf("JWTExpiryHours() = %d, want 1", cfg.JWTExpiryHours())
	}

	wantPublic := map[string]bool{"/auth/token": true, "/metrics": true, "/swagger/": true}
	got := map[string]bool{}
	for _, p := range cfg.PublicEndpoints() {
		got[p] = true
	}
	for p := range wantPublic {
		if !got[p] {
			t.Errorf("PublicEndpoints() missing %q", p)
		}
	}
}

func TestSecurityConfig_Accessors(t *testing.T) {
	path := writeConfigFile(t, `
security:
  auth:
    provider: static
    static:
      min_password_length: 16
      weak_passwords:
        - letmein
        - password
  public_endpoints:
    - /health
  jwt:
    secret_env: BOOKSHELF_JWT_SECRET
    expiry_hours: 24
`)
	cfg, err := LoadSecurityConfig(path)
	if err != nil {
		t.Fatalf("LoadSecurityConfig() error = %v", err)
	}

	if cfg.MinPasswordLength() != 16 {
		t.Errorf("MinPasswordLength() = %d, want 16", cfg.MinPasswordLength())
	}
	if len(cfg.WeakPasswords()) != 2 {
		t.Errorf("WeakPasswords() = %v, want 2 entries", cfg.WeakPasswords())
	}
	if cfg.JWTSecretEnv() != "BOOKSHELF_JWT_SECRET" {
		t.Errorf("JWTSecretEnv() = %q", cfg.JWTSecretEnv())
	}
	if cfg.JWTExpiryHours() != 24 {
		t.Errorf("JWTExpiryHours() = %d, want 24", cfg.JWTExpiryHours())
	}
}

// Package config loads file-based configuration for the API server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SecurityConfig holds the security section of the YAML config file.
type SecurityConfig struct {
	Security struct {
		Auth struct {
			Provider string `yaml:"provider"`
			Static   struct {
				MinPasswordLength int      `yaml:"min_password_length"`
				WeakPasswords     []string `yaml:"weak_passwords"`
			} `yaml:"static"`
		} `yaml:"auth"`
		PublicEndpoints []string `yaml:"public_endpoints"`
		JWT             struct {
			SecretEnv   string `yaml:"secret_env"`
			ExpiryHours int    `yaml:"expiry_hours"`
		} `yaml:"jwt"`
	} `yaml:"security"`
}

// DefaultSecurityConfig returns the configuration used when no YAML file
// is supplied: static credentials, /auth/token and the operational
// endpoints public, JWT secret from JWT_SECRET with one hour expiry.
func DefaultSecurityConfig() *SecurityConfig {
	var c SecurityConfig
	c.Security.Auth.Provider = "static"
	c.Security.Auth.Static.MinPasswordLength = 8
	c.Security.PublicEndpoints = []string{
		"/auth/token",
		"/health",
		"/ready",
		"/live",
		"/metrics",
		"/swagger/",
	}
	c.Security.JWT.SecretEnv = "JWT_SECRET"
	c.Security.JWT.ExpiryHours = 1
	return &c
}

// LoadSecurityConfig reads and validates a YAML security config.
// The path comes from a CLI flag or env var, not from request input.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is operator-supplied, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SecurityConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.Auth.Provider == "" {
		return fmt.Errorf("auth provider is required")
	}

	if config.Security.Auth.Provider == "static" {
		if config.Security.Auth.Static.MinPasswordLength < 8 {
			return fmt.Errorf("min_password_length must be at least 8")
		}
	}

	if config.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}

	if config.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}

	return nil
}

// AuthProvider returns the configured authentication provider name.
func (c *SecurityConfig) AuthProvider() string {
	return c.Security.Auth.Provider
}

// MinPasswordLength returns the minimum accepted password length.
func (c *SecurityConfig) MinPasswordLength() int {
	return c.Security.Auth.Static.MinPasswordLength
}

// WeakPasswords returns passwords rejected regardless of length.
func (c *SecurityConfig) WeakPasswords() []string {
	return c.Security.Auth.Static.WeakPasswords
}

// PublicEndpoints returns path prefixes served without authentication.
func (c *SecurityConfig) PublicEndpoints() []string {
	return c.Security.PublicEndpoints
}

// JWTSecretEnv returns the env var name holding the JWT signing secret.
func (c *SecurityConfig) JWTSecretEnv() string {
	return c.Security.JWT.SecretEnv
}

// JWTExpiryHours returns the token lifetime in hours.
func (c *SecurityConfig) JWTExpiryHours() int {
	return c.Security.JWT.ExpiryHours
}

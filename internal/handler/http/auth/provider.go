// Package auth provides JWT issuance and role-based authorization for
// the HTTP API.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	authservice "bookshelf/internal/service/auth"
)

// StaticUserProvider authenticates against credentials held in
// environment variables: ADMIN_USER/ADMIN_USER_PASSWORD for the admin
// role and optionally DEMO_USER/DEMO_USER_PASSWORD for the read-only
// viewer role.
type StaticUserProvider struct {
	minPasswordLength int
	weakPasswords     []string
}

// NewStaticUserProvider creates a provider with the given password policy.
func NewStaticUserProvider(minPasswordLength int, weakPasswords []string) *StaticUserProvider {
	return &StaticUserProvider{
		minPasswordLength: minPasswordLength,
		weakPasswords:     weakPasswords,
	}
}

// ValidateCredentials checks the pair against the admin user and, when
// configured, the viewer user. Comparisons are constant-time to avoid
// leaking which field mismatched.
func (p *StaticUserProvider) ValidateCredentials(ctx context.Context, creds authservice.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}
	if len(creds.Password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}
	for _, weak := range p.weakPasswords {
		if creds.Password == weak || strings.HasPrefix(creds.Password, weak) {
			return fmt.Errorf("weak password detected")
		}
	}

	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_USER_PASSWORD")

	adminUserMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(adminUser)) == 1
	adminPassMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1
	if adminUserMatch && adminPassMatch {
		return nil
	}

	demoUser := os.Getenv("DEMO_USER")
	demoPass := os.Getenv("DEMO_USER_PASSWORD")
	if demoUser != "" {
		demoUserMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(demoUser)) == 1
		demoPassMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(demoPass)) == 1
		if demoUserMatch && demoPassMatch {
			return nil
		}
	}

	return fmt.Errorf("invalid credentials")
}

// IdentifyUser maps a username to its role: admin, viewer, or error.
func (p *StaticUserProvider) IdentifyUser(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username must not be empty")
	}

	adminUser := os.Getenv("ADMIN_USER")
	if subtle.ConstantTimeCompare([]byte(username), []byte(adminUser)) == 1 {
		return RoleAdmin, nil
	}

	demoUser := os.Getenv("DEMO_USER")
	if demoUser != "" && subtle.ConstantTimeCompare([]byte(username), []byte(demoUser)) == 1 {
		return RoleViewer, nil
	}

	return "", fmt.Errorf("user not found")
}

// GetRequirements returns the configured password policy.
func (p *StaticUserProvider) GetRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: p.minPasswordLength,
		WeakPasswords:     p.weakPasswords,
	}
}

// Name returns the provider name.
func (p *StaticUserProvider) Name() string {
	return "static"
}

// Package auth holds the framework-agnostic authentication service.
package auth

import (
	"context"
	"strings"
)

// Credentials carries a username and password pair.
type Credentials struct {
	Username string
	Password string
}

// CredentialRequirements defines the password policy of a provider.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// Provider validates credentials and resolves users to roles.
type Provider interface {
	// ValidateCredentials checks a username/password pair.
	ValidateCredentials(ctx context.Context, creds Credentials) error

	// IdentifyUser returns the role for a username, or an error if
	// the user is unknown.
	IdentifyUser(ctx context.Context, username string) (string, error)

	// GetRequirements returns the provider's password policy.
	GetRequirements() CredentialRequirements

	// Name returns the provider name.
	Name() string
}

// Service handles authentication business logic independent of HTTP.
type Service struct {
	provider        Provider
	publicEndpoints []string
}

// NewService creates an authentication service.
func NewService(provider Provider, publicEndpoints []string) *Service {
	return &Service{
		provider:        provider,
		publicEndpoints: publicEndpoints,
	}
}

// ValidateCredentials validates credentials via the configured provider.
func (s *Service) ValidateCredentials(ctx context.Context, creds Credentials) error {
	return s.provider.ValidateCredentials(ctx, creds)
}

// IdentifyUser resolves a username to a role via the configured provider.
func (s *Service) IdentifyUser(ctx context.Context, username string) (string, error) {
	return s.provider.IdentifyUser(ctx, username)
}

// IsPublicEndpoint reports whether a path matches a configured public
// endpoint prefix.
func (s *Service) IsPublicEndpoint(path string) bool {
	for _, endpoint := range s.publicEndpoints {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	return false
}

// Provider returns the configured authentication provider.
func (s *Service) Provider() Provider {
	return s.provider
}

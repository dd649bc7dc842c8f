package auth

import "testing"

func TestIsPublicEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/health", true},
		{"/health/", true},
		{"/health?format=json", true},
		{"/health/detail", false},
		{"/healthcheck", false},
		{"/ready", true},
		{"/live", true},
		{"/metrics", true},
		{"/swagger/", true},
		{"/swagger/index.html", true},
		{"/auth/token", true},
		{"/auth/token/", true},
		{"/books", false},
		{"/books/1", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsPublicEndpoint(tt.path); got != tt.want {
				t.Errorf("IsPublicEndpoint(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestConfigurePublicEndpoints(t *testing.T) {
	original := PublicEndpoints
	t.Cleanup(func() { PublicEndpoints = original })

	ConfigurePublicEndpoints([]string{"/ping"})
	if !IsPublicEndpoint("/ping") {
		t.Error("configured endpoint should be public")
	}
	if IsPublicEndpoint("/health") {
		t.Error("replaced list should not include previous entries")
	}

	// Empty input keeps the current list.
	ConfigurePublicEndpoints(nil)
	if !IsPublicEndpoint("/ping") {
		t.Error("nil input should not clear the list")
	}
}

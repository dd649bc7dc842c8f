package auth

import (
	"os"
	"strings"
	"testing"
)

func TestValidateAdminCredentials(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		pass    string
		wantErr string
	}{
		{
			name: "valid credentials",
			user: "admin@example.com",
			pass: "correct-horse-battery-staple",
		},
		{
			name:    "empty user",
			user:    "",
			pass:    "correct-horse-battery-staple",
			wantErr: "ADMIN_USER must not be empty",
		},
		{
			name:    "empty password",
			user:    "admin@example.com",
			pass:    "",
			wantErr: "ADMIN_USER_PASSWORD must not be empty",
		},
		{
			name:    "short password",
			user:    "admin@example.com",
			pass:    "short",
			wantErr: "at least 12 characters",
		},
		{
			name:    "repeated characters",
			user:    "admin@example.com",
			pass:    "aaaaaaaaaaaa",
			wantErr: "simple numeric pattern",
		},
		{
			name:    "ascending digits",
			user:    "admin@example.com",
			pass:    "123456789012",
			wantErr: "simple numeric pattern",
		},
		{
			name:    "keyboard pattern",
			user:    "admin@example.com",
			pass:    "xxqwertyuiopxx",
			wantErr: "keyboard pattern",
		},
		{
			name:    "weak password padded",
			user:    "admin@example.com",
			pass:    "password1234",
			wantErr: "weak password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_USER", tt.user)
			t.Setenv("ADMIN_USER_PASSWORD", tt.pass)

			err := ValidateAdminCredentials()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateAdminCredentials() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

type recordingLogger struct {
	infos []string
	warns []string
}

func (l *recordingLogger) Info(msg string, args ...any) { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warn(msg string, args ...any) { l.warns = append(l.warns, msg) }

func TestValidateViewerCredentials(t *testing.T) {
	tests := []struct {
		name         string
		demoUser     string
		demoPass     string
		adminUser    string
		wantDisabled bool
		wantWarn     bool
	}{
		{
			name:      "not configured is fine",
			demoUser:  "",
			adminUser: "admin@example.com",
		},
		{
			name:         "empty password disables viewer",
			demoUser:     "demo@example.com",
			demoPass:     "",
			adminUser:    "admin@example.com",
			wantDisabled: true,
			wantWarn:     true,
		},
		{
			name:         "same as admin disables viewer",
			demoUser:     "admin@example.com",
			demoPass:     "a-long-enough-password",
			adminUser:    "admin@example.com",
			wantDisabled: true,
			wantWarn:     true,
		},
		{
			name:         "short password disables viewer",
			demoUser:     "demo@example.com",
			demoPass:     "short",
			adminUser:    "admin@example.com",
			wantDisabled: true,
			wantWarn:     true,
		},
		{
			name:         "weak password disables viewer",
			demoUser:     "demo@example.com",
			demoPass:     "password12345",
			adminUser:    "admin@example.com",
			wantDisabled: true,
			wantWarn:     true,
		},
		{
			name:      "valid viewer",
			demoUser:  "demo@example.com",
			demoPass:  "a-long-enough-password",
			adminUser: "admin@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEMO_USER", tt.demoUser)
			t.Setenv("DEMO_USER_PASSWORD", tt.demoPass)
			t.Setenv("ADMIN_USER", tt.adminUser)

			logger := &recordingLogger{}
			if err := ValidateViewerCredentials(logger); err != nil {
				t.Fatalf("ValidateViewerCredentials() must never fail, got %v", err)
			}

			if tt.wantDisabled && os.Getenv("DEMO_USER") != "" {
				t.Error("DEMO_USER should be unset when viewer is disabled")
			}
			if tt.wantWarn && len(logger.warns) == 0 {
				t.Error("expected a warning log")
			}
			if !tt.wantWarn && len(logger.warns) > 0 {
				t.Errorf("unexpected warnings: %v", logger.warns)
			}
		})
	}
}

package auth

import "testing"

func TestCheckRolePermission(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		method string
		path   string
		want   bool
	}{
		{"admin can create books", RoleAdmin, "POST", "/books", true},
		{"admin can delete books", RoleAdmin, "DELETE", "/books/1", true},
		{"admin can read anything", RoleAdmin, "GET", "/anything", true},
		{"viewer can list books", RoleViewer, "GET", "/books", true},
		{"viewer can read one book", RoleViewer, "GET", "/books/1", true},
		{"viewer can search books", RoleViewer, "GET", "/books/search", true},
		{"viewer can preflight", RoleViewer, "OPTIONS", "/books", true},
		{"viewer can read swagger", RoleViewer, "GET", "/swagger/index.html", true},
		{"viewer cannot create books", RoleViewer, "POST", "/books", false},
		{"viewer cannot delete books", RoleViewer, "DELETE", "/books/1", false},
		{"viewer cannot read other paths", RoleViewer, "GET", "/admin", false},
		{"empty role denied", "", "GET", "/books", false},
		{"unknown role denied", "editor", "GET", "/books", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkRolePermission(tt.role, tt.method, tt.path); got != tt.want {
				t.Errorf("checkRolePermission(%q, %q, %q) = %v, want %v",
					tt.role, tt.method, tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchesPathPattern(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"/books", []string{"/books/*"}, true},
		{"/books/1", []string{"/books/*"}, true},
		{"/books/1/reviews", []string{"/books/*"}, true},
		{"/bookstore", []string{"/books/*"}, false},
		{"/books", []string{"/books"}, true},
		{"/books/1", []string{"/books"}, false},
		{"/anything", []string{"/*"}, true},
		{"/users", []string{"/books/*", "/swagger/*"}, false},
	}

	for _, tt := range tests {
		if got := matchesPathPattern(tt.path, tt.patterns); got != tt.want {
			t.Errorf("matchesPathPattern(%q, %v) = %v, want %v",
				tt.path, tt.patterns, got, tt.want)
		}
	}
}

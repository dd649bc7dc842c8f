package auth

import "strings"

// Roles carried in JWT claims and checked on every protected request.
const (
	// RoleAdmin has full access including write operations
	RoleAdmin = "admin"
	// RoleViewer has read-only access to the catalog
	RoleViewer = "viewer"
)

// Permission lists the HTTP methods and path patterns a role may use.
type Permission struct {
	AllowedMethods []string

	// AllowedPaths supports trailing "/*" for prefix matching;
	// "/*" alone matches everything.
	AllowedPaths []string
}

// RolePermissions maps each role to what it may do. OPTIONS is allowed
// for both roles so CORS preflight requests succeed.
var RolePermissions = map[string]Permission{
	RoleAdmin: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedPaths:   []string{"/*"},
	},
	RoleViewer: {
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedPaths: []string{
			"/books",
			"/books/*",
			"/swagger/*",
		},
	},
}

// checkRolePermission reports whether role may perform method on path.
// Unknown or empty roles are always denied.
func checkRolePermission(role, method, path string) bool {
	if role == "" {
		return false
	}
	perm, exists := RolePermissions[role]
	if !exists {
		return false
	}

	methodAllowed := false
	for _, m := range perm.AllowedMethods {
		if m == method {
			methodAllowed = true
			break
		}
	}
	if !methodAllowed {
		return false
	}

	return matchesPathPattern(path, perm.AllowedPaths)
}

// matchesPathPattern matches path against the patterns. "/books/*"
// matches "/books" itself and anything under "/books/".
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}
		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}

package shared

import "strings"

// AssetURL resolves a stored image path against the configured asset base.
// Absolute URLs pass through untouched.
func AssetURL(path, base string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "/") {
		return base + path
	}
	return path
}

package service

import "strings"

// NormalizeEmail lowercases and trims an email address so that lookups and the
// uniqueness constraint agree on a single spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

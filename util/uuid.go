// Package util provides id and token generation for the storefront.
package util

import "github.com/google/uuid"

// GenerateUUID returns a RFC4122-compliant v4 UUID string.
func GenerateUUID() string {
	return uuid.NewString()
}

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateToken returns an opaque hex token used for CSRF checks.
func GenerateToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

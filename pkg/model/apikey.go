package model

import "github.com/google/uuid"

// GenerateAPIKey returns a fresh API key for a device. Keys are opaque and
// assigned by the server at creation time.
func GenerateAPIKey() string {
	return uuid.NewString()
}

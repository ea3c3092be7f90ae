package common

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a random UUID string, used as a per-search trace ID.
func GenerateUUID() string {
	return uuid.New().String()
}

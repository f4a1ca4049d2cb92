package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns an opaque unique identifier for items, folders
// and users.
func GenerateID() string {
	return uuid.New().String()
}

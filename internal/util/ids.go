package util

import "github.com/google/uuid"

// NewID generates a unique identifier for requests and tasks.
func NewID() string { return uuid.NewString() }

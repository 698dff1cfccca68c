package model

import (
	"time"

	"github.com/google/uuid"
)

// NewRunID generates a unique identifier for one pipeline run.
func NewRunID() string {
	return "run-" + uuid.NewString()
}

// UTCNowISO returns the current UTC time in ISO format with Z suffix.
func UTCNowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

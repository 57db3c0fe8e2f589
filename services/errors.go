package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes. Services
// wrap them with the offending date so the message stays useful in logs.
var (
	ErrNotFound = errors.New("entry not found")
	ErrConflict = errors.New("entry already exists")
)

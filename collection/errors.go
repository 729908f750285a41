package collection

import "errors"

// Sentinel errors for consistent error handling.
var (
	ErrSearchNotConfigured = errors.New("search is not configured")
	ErrUnknownTag          = errors.New("unknown tag")
)

package domain

import "fmt"

// ValidationError marks client input as malformed or missing. Handlers map it
// to a 400 response; no store interaction happens once it is raised.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConfigurationError marks the deployment as misconfigured, e.g. a missing
// store connection string. It is effectively fatal to every store-backed
// request, not something a retry can fix.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// StorageError wraps a failure from the underlying store with the operation
// that hit it. The original error stays attached for diagnostics; callers
// surface a generic message and do not retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

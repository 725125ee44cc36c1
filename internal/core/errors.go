package core

// errors.go defines the typed errors the service returns. The web layer
// inspects them with errors.As to choose a response status; everything that
// is not one of these types is treated as a storage fault and answered with
// a generic 500 so no internal detail leaks to clients.

import "fmt"

// ValidationError reports a missing or invalid input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports a duplicate product name.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("product name %q already exists", e.Name)
}

// NotFoundError reports an unknown product id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ID)
}

// ImportError reports an import source that could not be read or parsed.
// No rows have been inserted when an ImportError is returned.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed: %v", e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

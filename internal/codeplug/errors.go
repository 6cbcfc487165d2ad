package codeplug

import (
	"errors"
	"fmt"
)

// ErrNotInGraph indicates a cross reference to an entity that is not owned
// by the same configuration, or a stale index lookup. Operations hitting it
// must abort, it is never silently recovered.
var ErrNotInGraph = errors.New("entity is not part of this configuration")

// ValidationError is returned by mutating setters when a field value is out
// of range. The entity is left unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func validationErr(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

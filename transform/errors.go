package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaViolation is matched by every error Apply returns for a
	// transaction that would produce an invalid document.
	ErrSchemaViolation = errors.New("schema violation")
	ErrBadRange        = errors.New("invalid range")
	ErrNoNode          = errors.New("no node at position")
)

// SchemaViolation reports the step that failed. The document is unchanged.
type SchemaViolation struct {
	Step int
	Op   string
	Err  error
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation: step %d (%s): %v", e.Step, e.Op, e.Err)
}

func (e *SchemaViolation) Unwrap() []error {
	return []error{ErrSchemaViolation, e.Err}
}

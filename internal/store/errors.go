// internal/store/errors.go
package store

import "fmt"

// StoreError wraps an I/O or query failure against the record store
type StoreError struct {
	Op         string
	Underlying error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Underlying)
}

func (e *StoreError) Unwrap() error {
	return e.Underlying
}

// ParseError reports a stored row that does not split into the expected fields
type ParseError struct {
	Row string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse row %q", e.Row)
}

// WrapStoreError creates a StoreError from underlying error
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Underlying: err}
}

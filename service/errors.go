package service

import "fmt"

// MissingFieldError indicates that a required field was absent when
// constructing a Service.
//
// See spec.md §7 ("MissingField").
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("service descriptor is missing required field %q", e.Field)
}

package service

import (
	"errors"
	"strings"
)

// ErrAccessDenied covers both role mismatches and ownership mismatches. The
// two must stay indistinguishable on the wire so an unauthorized caller
// cannot probe which appointments exist.
var ErrAccessDenied = errors.New("access denied")

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

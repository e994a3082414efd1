package chatbot

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound is returned when a named template does not exist
	// in the registry.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrRequestFailed is returned when dispatching a turn to the external
	// chat service fails for any reason.
	ErrRequestFailed = errors.New("request failed")
)

// wrapRequestErr ties a dispatch error to ErrRequestFailed while keeping the
// lower-level cause in the chain for diagnostics.
func wrapRequestErr(err error) error {
	return fmt.Errorf("%w: %w", ErrRequestFailed, err)
}

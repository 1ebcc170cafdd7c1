package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrProtected         = errors.New("protected")
	ErrArgument          = errors.New("invalid argument")
	ErrArgumentConflict  = fmt.Errorf("%w: conflicting options", ErrArgument)
	ErrCorrupted         = errors.New("corrupted")
	ErrInvalidState      = errors.New("invalid state")
	ErrAuthRequired      = errors.New("authentication required")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNoResult          = errors.New("no result")
	ErrLocked            = errors.New("locked")
	ErrUnavailable       = errors.New("service unavailable")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrInvalidState
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a stable snake_case label for the first marker matched by err.
// Unclassified errors report "internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCorrupted):
		return "corrupted"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrProtected):
		return "protected"
	case errors.Is(err, ErrArgumentConflict):
		return "argument_conflict"
	case errors.Is(err, ErrArgument):
		return "argument"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrAuthRequired):
		return "auth_required"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrNoResult):
		return "no_result"
	case errors.Is(err, ErrLocked):
		return "locked"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}

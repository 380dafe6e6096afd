package organize

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceVanished marks files that disappeared between notification and
	// processing. Expected during the debounce window; skipped silently.
	ErrSourceVanished = errors.New("source vanished")
	// ErrIgnored marks files excluded by ignore patterns or the size ceiling.
	ErrIgnored = errors.New("ignored")
	// ErrDestinationUnwritable marks permission or I/O failures while creating
	// the destination folder or moving the file.
	ErrDestinationUnwritable = errors.New("destination unwritable")
	// ErrConflictExhausted marks the case where even the timestamp fallback
	// name collides. The file is left unmoved.
	ErrConflictExhausted = errors.New("conflict resolution exhausted")
)

// Wrap builds an error message with operation context while tagging it with
// the provided marker for errors.Is classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrDestinationUnwritable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "organize failure"
	}
	return strings.Join(parts, ": ")
}

package content

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a slug, category or page does not exist.
var ErrNotFound = errors.New("content not found")

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

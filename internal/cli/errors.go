package cli

import (
	"errors"
	"fmt"
)

var errIndex = errors.New("index out of range")

// usageError marks bad arguments; Run maps it to exit code 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

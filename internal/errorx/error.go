// Package errorx provides helpers for annotating errors.
package errorx

import "fmt"

// Wrap adds additional context to an error.
func Wrap(err *error, format string, args ...any) {
	if err == nil {
		panic("err must not be nil")
	}

	if *err == nil {
		return
	}

	*err = fmt.Errorf(format+": %w", append(args, *err)...)
}

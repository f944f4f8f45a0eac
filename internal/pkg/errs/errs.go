package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}

// Cause returns the innermost error, skipping wraps and marks.
func Cause(err error) error {
	return cr.UnwrapAll(err)
}

// Kind returns the taxonomy sentinel err is marked with, or nil.
func Kind(err error) error {
	for _, k := range []error{
		ErrValidation, ErrNotFound, ErrState, ErrConflict,
		ErrUnauthorized, ErrForbidden,
		ErrJobTimeout, ErrExhaustedRetries, ErrStore,
	} {
		if cr.Is(err, k) {
			return k
		}
	}
	return nil
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

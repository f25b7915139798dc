package errs

import (
	stderrors "errors"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches markErr so errors.Is(err, markErr) holds while the cause is preserved.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	// cr.Mark is only visible to cockroachdb's errors.Is; the wrapper below
	// exposes the mark to the standard library's errors.Is as well.
	return &markedError{error: cr.Mark(err, markErr), mark: markErr}
}

type markedError struct {
	error
	mark error
}

func (e *markedError) Is(target error) bool {
	return e.mark == target || stderrors.Is(e.mark, target)
}

func (e *markedError) Unwrap() error {
	return e.error
}

package effect

import (
	"context"
	"errors"
)

// ExitCase tags how a computation terminated.
type ExitCase uint8

const (
	// ExitSucceeded means the computation returned a value.
	ExitSucceeded ExitCase = iota

	// ExitErrored means the computation failed with a non-cancellation error.
	ExitErrored

	// ExitCanceled means the computation was interrupted by context
	// cancellation or deadline expiry.
	ExitCanceled
)

func (c ExitCase) String() string {
	switch c {
	case ExitSucceeded:
		return "succeeded"
	case ExitErrored:
		return "errored"
	case ExitCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Exit describes the outcome of a computation. Finalizers receive it so they
// can branch on how the guarded effect terminated (e.g. release a handle
// only on cancellation). Err is nil exactly when Case is ExitSucceeded.
type Exit struct {
	Case ExitCase
	Err  error
}

// ExitOf classifies an error into an Exit. Cancellation and deadline errors
// map to ExitCanceled, any other non-nil error to ExitErrored.
func ExitOf(err error) Exit {
	switch {
	case err == nil:
		return Exit{Case: ExitSucceeded}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Exit{Case: ExitCanceled, Err: err}
	default:
		return Exit{Case: ExitErrored, Err: err}
	}
}

// Succeeded reports whether the computation completed normally.
func (e Exit) Succeeded() bool { return e.Case == ExitSucceeded }

// Canceled reports whether the computation was interrupted.
func (e Exit) Canceled() bool { return e.Case == ExitCanceled }

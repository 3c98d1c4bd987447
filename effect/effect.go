package effect

import (
	"context"

	"go.uber.org/multierr"
)

// Effect is a lazy, rerunnable description of a computation producing an A.
// Running the same Effect twice performs its work twice; nothing happens
// until it is applied to a context.
type Effect[A any] func(ctx context.Context) (A, error)

// Pure lifts a plain value into an effect that always succeeds with it.
func Pure[A any](a A) Effect[A] {
	return func(_ context.Context) (A, error) {
		return a, nil
	}
}

// RaiseError lifts a failure into the effect's error channel.
func RaiseError[A any](err error) Effect[A] {
	return func(_ context.Context) (A, error) {
		var zero A
		return zero, err
	}
}

// FlatMap sequences two effects: run e, then feed its value to f to obtain
// the next effect. A failure in e short-circuits f.
func FlatMap[A, B any](e Effect[A], f func(A) Effect[B]) Effect[B] {
	return func(ctx context.Context) (B, error) {
		a, err := e(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a)(ctx)
	}
}

// Map applies a pure function to the result of an effect. Equivalent to
// FlatMap with a Pure continuation, without the intermediate effect value.
func Map[A, B any](e Effect[A], f func(A) B) Effect[B] {
	return func(ctx context.Context) (B, error) {
		a, err := e(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// HandleError recovers from a failure of e by running the effect returned
// by h. Cancellation is not a recoverable failure: if the context is done,
// the error passes through untouched so cancellation keeps propagating.
func HandleError[A any](e Effect[A], h func(error) Effect[A]) Effect[A] {
	return func(ctx context.Context) (A, error) {
		a, err := e(ctx)
		if err == nil || ExitOf(err).Canceled() {
			return a, err
		}
		return h(err)(ctx)
	}
}

// Uncancelable runs e with cancellation deferred: the effect observes a
// context whose Done channel never fires, while values stored on the parent
// context remain visible. The surrounding computation notices the pending
// cancellation at its next checkpoint.
func Uncancelable[A any](e Effect[A]) Effect[A] {
	return func(ctx context.Context) (A, error) {
		return e(context.WithoutCancel(ctx))
	}
}

// GuaranteeCase runs e and then always runs fin with the Exit describing how
// e terminated. The finalizer runs under an uncancelable context so a
// cancellation that interrupted e cannot also starve the cleanup. A
// finalizer failure never masks the primary outcome: it is attached to e's
// error, or becomes the error itself when e succeeded.
func GuaranteeCase[A any](e Effect[A], fin func(context.Context, Exit) error) Effect[A] {
	return func(ctx context.Context) (A, error) {
		a, err := e(ctx)
		ferr := fin(context.WithoutCancel(ctx), ExitOf(err))
		if ferr == nil {
			return a, err
		}
		if err != nil {
			return a, multierr.Append(err, ferr)
		}
		var zero A
		return zero, ferr
	}
}

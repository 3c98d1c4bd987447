package resource

import (
	"context"

	"github.com/on-the-ground/resource_ive_go/effect"
)

// Map transforms the acquired value with a pure function. The release
// obligation is untouched; it still targets the original resource.
func Map[A, B any](r Resource[A], f func(A) B) Resource[B] {
	return Bind(r, func(a A) Resource[B] {
		return Pure(f(a))
	})
}

// EvalMap runs an additional effect on the acquired value. The effect adds
// no release obligation of its own; release still targets the original
// resource, not the transformed value.
func EvalMap[A, B any](r Resource[A], f func(context.Context, A) (B, error)) Resource[B] {
	return Bind(r, func(a A) Resource[B] {
		return Eval(func(ctx context.Context) (B, error) {
			return f(ctx, a)
		})
	})
}

// EvalTap runs an effect on the acquired value and keeps the value. A
// failure of the effect fails acquisition; the original resource is still
// released.
func EvalTap[A any](r Resource[A], f func(context.Context, A) error) Resource[A] {
	return EvalMap(r, func(ctx context.Context, a A) (A, error) {
		return a, f(ctx, a)
	})
}

// OnFinalize attaches an extra finalizer that runs before the resource's
// own release during unwind.
func OnFinalize[A any](r Resource[A], fin func(context.Context) error) Resource[A] {
	return OnFinalizeCase(r, func(ctx context.Context, _ effect.Exit) error {
		return fin(ctx)
	})
}

// OnFinalizeCase is OnFinalize with the Exit of the surrounding use made
// available to the finalizer.
func OnFinalizeCase[A any](r Resource[A], fin func(context.Context, effect.Exit) error) Resource[A] {
	return Bind(r, func(a A) Resource[A] {
		return Allocate(effect.Pure(Allocated[A]{
			Value: a,
			Release: func(ctx context.Context, exit effect.Exit) error {
				return fin(ctx, exit)
			},
		}))
	})
}

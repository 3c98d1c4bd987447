package resource

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/on-the-ground/resource_ive_go/effect"
)

// Use evaluates a resource program: it performs every acquisition the
// program describes, runs body with the final value, and releases every
// acquired resource in reverse acquisition order before returning.
//
// Releases run even when an inner acquisition fails, when body fails or is
// canceled, and when an earlier release in the unwind already failed. The
// returned error is the primary cause with any release failures attached as
// secondary causes (recoverable via multierr.Errors); on full success it is
// the body's result.
//
// Acquisition steps run with cancellation deferred: a cancellation arriving
// mid-acquire takes effect once that acquisition completes, as if requested
// immediately after. Body and deferred-construction steps observe the
// caller's context directly.
func Use[A, B any](ctx context.Context, r Resource[A], body func(context.Context, A) (B, error)) (B, error) {
	var zero B

	ev := newEvaluation(ctx)
	v, err := ev.acquire(ctx, r.node)
	if err != nil {
		return zero, multierr.Append(err, ev.unwind(ctx, effect.ExitOf(err)))
	}
	if cerr := ctx.Err(); cerr != nil {
		// Canceled between the last acquisition and the body.
		return zero, multierr.Append(cerr, ev.unwind(ctx, effect.ExitOf(cerr)))
	}

	out, bodyErr := body(ctx, v.(A))
	relErr := ev.unwind(ctx, effect.ExitOf(bodyErr))
	switch {
	case bodyErr != nil:
		return zero, multierr.Append(bodyErr, relErr)
	case relErr != nil:
		return zero, relErr
	default:
		return out, nil
	}
}

// Surround evaluates r and runs e while the resource is held, ignoring the
// resource value itself.
func Surround[A, B any](ctx context.Context, r Resource[A], e effect.Effect[B]) (B, error) {
	return Use(ctx, r, func(ctx context.Context, _ A) (B, error) {
		return e(ctx)
	})
}

// evaluation owns the finalizer stack for exactly one Use call. It is never
// shared: concurrent evaluations of the same Resource each get their own.
type evaluation struct {
	id         uuid.UUID
	logger     *zap.Logger
	finalizers []finalizer
}

func newEvaluation(ctx context.Context) *evaluation {
	return &evaluation{
		id:     uuid.New(),
		logger: loggerFrom(ctx),
	}
}

// acquire interprets the program iteratively: an explicit continuation
// stack replaces recursion so arbitrarily deep Bind chains evaluate in
// constant call-stack space. Each successful allocation pushes its
// finalizer; on any failure the caller unwinds whatever was pushed.
func (ev *evaluation) acquire(ctx context.Context, cur node) (any, error) {
	var conts []func(any) node
	for {
		switch n := cur.(type) {
		case bindNode:
			conts = append(conts, n.cont)
			cur = n.source
			continue

		case suspendNode:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			next, err := n.resume(ctx)
			if err != nil {
				return nil, err
			}
			cur = next
			continue

		case allocateNode:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			// The acquire step is an uninterruptible unit: once started it
			// either completes with a pushed finalizer or fails with none.
			v, fin, err := n.acquire(context.WithoutCancel(ctx))
			if err != nil {
				return nil, err
			}
			if fin != nil {
				ev.finalizers = append(ev.finalizers, fin)
				ev.logger.Debug("resource acquired",
					zap.String("evaluation", ev.id.String()),
					zap.Int("depth", len(ev.finalizers)),
				)
			}
			if len(conts) == 0 {
				return v, nil
			}
			cur = conts[len(conts)-1](v)
			conts = conts[:len(conts)-1]

		default:
			panic("exhaustive match")
		}
	}
}

// unwind runs every pending finalizer from most to least recently acquired,
// under a context that cannot be canceled. It never stops early; failures
// are combined in unwind order and returned as one error.
func (ev *evaluation) unwind(ctx context.Context, exit effect.Exit) error {
	ctx = context.WithoutCancel(ctx)
	var err error
	for i := len(ev.finalizers) - 1; i >= 0; i-- {
		ev.logger.Debug("releasing resource",
			zap.String("evaluation", ev.id.String()),
			zap.Int("depth", i+1),
			zap.Stringer("exit", exit.Case),
		)
		if ferr := ev.finalizers[i](ctx, exit); ferr != nil {
			ev.logger.Warn("release failed",
				zap.String("evaluation", ev.id.String()),
				zap.Int("depth", i+1),
				zap.Error(ferr),
			)
			err = multierr.Append(err, ferr)
		}
	}
	ev.finalizers = nil
	return err
}

// acquireNode runs the acquisition phase of a sub-program with its own
// finalizer stack and returns the value together with one composite release
// covering everything acquired along the way. On failure the sub-program
// has already fully unwound and no obligation remains.
func acquireNode(ctx context.Context, n node) (any, finalizer, error) {
	ev := newEvaluation(ctx)
	v, err := ev.acquire(ctx, n)
	if err != nil {
		return nil, nil, multierr.Append(err, ev.unwind(ctx, effect.ExitOf(err)))
	}
	return v, func(ctx context.Context, exit effect.Exit) error {
		return ev.unwind(ctx, exit)
	}, nil
}

package resource

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/on-the-ground/resource_ive_go/effect"
)

// Pair holds the values of two independently acquired resources.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Both composes two independent resources into one. Acquisition runs
// concurrently; if either side fails, the side that did acquire is released
// before the failure propagates. On unwind both releases run concurrently
// and every failure is retained, with no ordering defined between failures
// of the two sides.
//
// The combined acquisition is a single allocate step: it is uninterruptible
// as a unit, though a failure on one side stops the other side between its
// own acquisition steps.
func Both[A, B any](ra Resource[A], rb Resource[B]) Resource[Pair[A, B]] {
	return Allocate(func(ctx context.Context) (Allocated[Pair[A, B]], error) {
		var (
			va, vb any
			fa, fb finalizer
			ea, eb error
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			va, fa, ea = acquireNode(gctx, ra.node)
			return ea
		})
		g.Go(func() error {
			vb, fb, eb = acquireNode(gctx, rb.node)
			return eb
		})
		_ = g.Wait()

		if err := multierr.Append(ea, eb); err != nil {
			exit := effect.ExitOf(err)
			relCtx := context.WithoutCancel(ctx)
			var relErr error
			if fa != nil {
				relErr = multierr.Append(relErr, fa(relCtx, exit))
			}
			if fb != nil {
				relErr = multierr.Append(relErr, fb(relCtx, exit))
			}
			return Allocated[Pair[A, B]]{}, multierr.Append(err, relErr)
		}

		return Allocated[Pair[A, B]]{
			Value:   Pair[A, B]{First: va.(A), Second: vb.(B)},
			Release: releaseBoth(fa, fb),
		}, nil
	})
}

// releaseBoth runs two composite finalizers concurrently and combines their
// failures. Both always run to completion; neither failure suppresses the
// other.
func releaseBoth(fa, fb finalizer) finalizer {
	return func(ctx context.Context, exit effect.Exit) error {
		var (
			mu  sync.Mutex
			err error
			wg  sync.WaitGroup
		)
		run := func(f finalizer) {
			defer wg.Done()
			if ferr := f(ctx, exit); ferr != nil {
				mu.Lock()
				err = multierr.Append(err, ferr)
				mu.Unlock()
			}
		}
		wg.Add(2)
		go run(fa)
		go run(fb)
		wg.Wait()
		return err
	}
}

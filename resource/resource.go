package resource

import (
	"context"
	"io"

	"github.com/on-the-ground/resource_ive_go/effect"
)

// Resource describes how to produce a value of type A with cleanup attached.
// A Resource is pure data: constructing or composing one acquires nothing.
// It is safe to store a Resource and evaluate it any number of times; each
// Use call is an independent acquisition with its own release obligations.
type Resource[A any] struct {
	node node
}

// Allocated pairs an acquired value with its release effect. Release
// receives the Exit describing how the surrounding use terminated and must
// not assume anything beyond the value it was paired with. A nil Release
// means no obligation.
type Allocated[A any] struct {
	Value   A
	Release func(context.Context, effect.Exit) error
}

// node is the sealed representation of a resource program. The evaluator
// matches exhaustively over exactly these three variants.
type node interface {
	sealedResourceNode()
}

// finalizer is a pending release, pushed on each successful acquisition.
type finalizer func(context.Context, effect.Exit) error

type allocateNode struct {
	acquire func(context.Context) (any, finalizer, error)
}

func (allocateNode) sealedResourceNode() {}

type bindNode struct {
	source node
	cont   func(any) node
}

func (bindNode) sealedResourceNode() {}

type suspendNode struct {
	resume func(context.Context) (node, error)
}

func (suspendNode) sealedResourceNode() {}

// Allocate builds a resource from an effect that yields a value paired with
// its release. If the acquire effect fails, no release obligation is
// created. The acquire effect runs uncancelably during evaluation.
func Allocate[A any](acquire effect.Effect[Allocated[A]]) Resource[A] {
	return Resource[A]{node: allocateNode{
		acquire: func(ctx context.Context) (any, finalizer, error) {
			alloc, err := acquire(ctx)
			if err != nil {
				return nil, nil, err
			}
			return alloc.Value, alloc.Release, nil
		},
	}}
}

// Make builds a resource from separate acquire and release steps. The
// release receives the acquired value and runs regardless of how the
// resource was used.
func Make[A any](acquire effect.Effect[A], release func(context.Context, A) error) Resource[A] {
	return MakeCase(acquire, func(ctx context.Context, a A, _ effect.Exit) error {
		return release(ctx, a)
	})
}

// MakeCase is Make with an exit-aware release: the finalizer can branch on
// whether the use succeeded, failed, or was canceled.
func MakeCase[A any](acquire effect.Effect[A], release func(context.Context, A, effect.Exit) error) Resource[A] {
	return Allocate(effect.Map(acquire, func(a A) Allocated[A] {
		return Allocated[A]{
			Value: a,
			Release: func(ctx context.Context, exit effect.Exit) error {
				return release(ctx, a, exit)
			},
		}
	}))
}

// Pure lifts a plain value into a resource with no release obligation.
func Pure[A any](a A) Resource[A] {
	return Allocate(effect.Pure(Allocated[A]{Value: a}))
}

// Eval lifts an effect into a resource with no release obligation.
// Acquisition is exactly running the effect, at normal cancellability:
// since no obligation is created, the effect is not masked.
func Eval[A any](e effect.Effect[A]) Resource[A] {
	return Defer(effect.Map(e, Pure[A]))
}

// Defer wraps an effect that itself constructs a resource, postponing the
// construction until evaluation. The effect runs at normal cancellability.
func Defer[A any](e effect.Effect[Resource[A]]) Resource[A] {
	return Resource[A]{node: suspendNode{
		resume: func(ctx context.Context) (node, error) {
			r, err := e(ctx)
			if err != nil {
				return nil, err
			}
			return r.node, nil
		},
	}}
}

// Bind sequences two resources: acquire r, then feed its value to f to
// decide what to acquire next. The continuation must only construct the
// returned resource; it runs during evaluation but performs no effects of
// its own. Releases run innermost first.
func Bind[A, B any](r Resource[A], f func(A) Resource[B]) Resource[B] {
	return Resource[B]{node: bindNode{
		source: r.node,
		cont: func(v any) node {
			return f(v.(A)).node
		},
	}}
}

// FromCloseable builds a resource whose release calls Close on the acquired
// value, surfacing any Close failure on the error channel.
func FromCloseable[A io.Closer](acquire effect.Effect[A]) Resource[A] {
	return Make(acquire, func(_ context.Context, a A) error {
		return a.Close()
	})
}

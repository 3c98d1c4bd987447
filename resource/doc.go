// Package resource provides scoped, composable resource management for Go.
//
// A Resource[A] is a lazy description of how to acquire a value of type A
// together with the release obligation that acquisition creates. Building a
// Resource performs no acquisition; composition is pure data. Acquisition
// happens only inside Use, which guarantees that every acquired resource is
// released in strictly reverse acquisition order, even when the body fails,
// an inner acquisition fails, a release itself fails, or the surrounding
// context is canceled.
//
// # What is a Resource?
//
// Any value whose acquisition creates a matching cleanup obligation:
//   - a file, socket, or database handle that must be closed,
//   - a lock or lease that must be given back,
//   - a background scope that must be joined.
//
// # Why describe instead of acquire?
//
// Go's defer ties cleanup to a function frame. That works until resource
// construction is dynamic: when what to acquire next depends on a previously
// acquired value, when resources are assembled in one place and used in
// another, or when two independent resources should be acquired in parallel.
// A Resource value makes the acquire/release pairing first-class, so
// composition and reuse cannot drop a release.
//
// # How does it work?
//
// Resources are built from Make, Allocate, Eval, or FromCloseable, composed
// with Bind, Map, EvalMap, or Both, and consumed with Use:
//
//	db := resource.FromCloseable(openDB)
//	stmt := resource.Bind(db, func(d *sql.DB) resource.Resource[*sql.Stmt] {
//	    return resource.FromCloseable(prepare(d))
//	})
//	err := resource.Use(ctx, stmt, runQueries)
//
// Use interprets the description node by node. Each successful acquisition
// pushes a finalizer; after the body returns, the finalizer stack unwinds in
// reverse order, never stopping early. Acquisition steps run with
// cancellation deferred so a partially acquired resource can never be left
// dangling; the body and deferred-construction steps stay fully cancellable.
//
// # Failure composition
//
// The caller of Use sees exactly one error. A body failure is primary with
// any release failures attached as secondary causes; if only releases fail,
// the first failure during unwind is primary and the rest are attached.
// Nothing is silently dropped. Secondary causes are attached with
// go.uber.org/multierr and can be recovered via multierr.Errors.
//
// # Design Philosophy
//
// The package embraces:
//   - Purity of description: composing resources has no side effects
//   - Lifecycle safety: a release runs exactly once per acquisition
//   - Explicit scoping: the finalizer stack belongs to one Use call
//
// No scheduler, retry policy, or timeout lives here; those belong to the
// caller's effects. A timeout is a race against Use, and the in-flight
// acquisition still completes and releases before the race settles.
package resource

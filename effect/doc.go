// Package effect defines the minimal effect contract consumed by the
// resource package.
//
// An Effect[A] is a description of a computation that, when run with a
// context, produces a value of type A or fails with an error. Cancellation
// travels on the context; failure travels on the error channel. The package
// provides exactly the capabilities a host runtime must supply to evaluate
// resource programs:
//
//   - Pure / RaiseError: lift a value or a failure
//   - FlatMap / Map: sequential composition
//   - HandleError: failure recovery
//   - Uncancelable: run with cancellation deferred
//   - GuaranteeCase: run with a finalizer keyed on how the effect exited
//
// Any runtime able to run func(context.Context) (A, error) values can host
// the resource evaluator; nothing here schedules work or blocks on its own.
package effect

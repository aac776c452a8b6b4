package rendezvous

import "github.com/amp-labs/rendezvous/result"

// New returns a fresh Future and its paired Promise, bound to a new
// rendezvous cell. This is the only entry point into the core; every other
// constructor and derived operation is built on top of it.
func New[A any]() (*Future[A], *Promise[A]) {
	c := newCell[A]()

	return newFuture[A](c), newPromise[A](c)
}

// Value returns a Future that already holds a success, satisfying
// IsResolved immediately.
func Value[A any](value A) *Future[A] {
	return Done(result.Ok(value))
}

// Err returns a Future that already holds a failure, satisfying IsResolved
// immediately.
func Err[A any](err error) *Future[A] {
	return Done(result.Err[A](err))
}

// Done returns a Future holding r, constructed by pairing a Future and
// Promise and immediately publishing into the Promise.
func Done[A any](r result.Try[A]) *Future[A] {
	f, p := New[A]()
	p.Publish(r)

	return f
}

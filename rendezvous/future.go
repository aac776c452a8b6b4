package rendezvous

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/amp-labs/rendezvous/result"
)

// Future is the consumer-side handle on a single asynchronous outcome. It is
// single-shot: every terminal operation (Resolve and its variants, the
// blocking waits) consumes it. Calling more than one terminal operation on
// the same Future is a programmer error and panics.
type Future[A any] struct {
	cell     *cell[A]
	consumed *atomic.Bool
}

func newFuture[A any](c *cell[A]) *Future[A] {
	f := &Future[A]{cell: c, consumed: atomic.NewBool(false)}

	runtime.SetFinalizer(f, func(f *Future[A]) {
		if f.consumed.CompareAndSwap(false, true) {
			f.cell.markDead()
		}
	})

	return f
}

// consume marks the Future used, panicking if it already was. Every
// terminal method and every derived operation that takes ownership of f
// must call this first.
func (f *Future[A]) consume() {
	if !f.consumed.CompareAndSwap(false, true) {
		panic("rendezvous: Future used more than once")
	}
}

// resolveRaw consumes f and installs cb, giving callers access to the drop
// hook that Resolve itself does not expose.
func (f *Future[A]) resolveRaw(cb installedCallback[A]) {
	f.consume()
	f.cell.tryInstall(cb)
}

// IsResolved reports whether a published result currently sits in the cell
// unclaimed. It does not consume the Future.
func (f *Future[A]) IsResolved() bool {
	return f.cell.isResolved()
}

// ID returns the identifier stamped on the underlying rendezvous cell at
// creation. It is attached only to the error log line Async/AsyncWithError
// emit; every Future a derived operation returns has its own cell and so
// its own ID. It plays no role in the rendezvous protocol itself.
func (f *Future[A]) ID() uuid.UUID {
	return f.cell.id
}

// Abandon drops the Future without installing a callback, consuming it. Any
// later publish on the paired Promise becomes a silent no-op. Go has no
// destructors, so a Future that simply falls out of scope without being
// resolved is caught, eventually, by the finalizer installed at
// construction; Abandon exists so tests and callers that know they are
// discarding a Future can make the abandonment happen deterministically
// instead of waiting on the garbage collector.
func (f *Future[A]) Abandon() {
	if !f.consumed.CompareAndSwap(false, true) {
		return
	}

	f.cell.markDead()
}

// Resolve installs cb into the cell, consuming the Future. cb is invoked
// with the published result whether the Promise publishes before or after
// this call; cb is never invoked if the Promise is abandoned without
// publishing.
func (f *Future[A]) Resolve(cb func(result.Try[A])) {
	f.resolveRaw(installedCallback[A]{fire: cb})
}

// ResolveSuccess installs a callback that runs only when the outcome is a
// success; failures are discarded.
func (f *Future[A]) ResolveSuccess(cb func(A)) {
	f.Resolve(func(r result.Try[A]) {
		if r.IsSuccess() {
			cb(r.Value)
		}
	})
}

// ResolveErr installs a callback that runs only when the outcome is a
// failure; successes are discarded.
func (f *Future[A]) ResolveErr(cb func(error)) {
	f.Resolve(func(r result.Try[A]) {
		if r.IsFailure() {
			cb(r.Error)
		}
	})
}

// Await blocks until the paired Promise publishes, then returns the
// outcome. It panics if the Promise is abandoned without publishing; use
// AwaitSafe at boundaries that must recover from that condition instead of
// crashing.
func (f *Future[A]) Await() result.Try[A] {
	r, dropped := f.awaitChannel()
	if dropped {
		panic(DroppedPromise{})
	}

	return r
}

// AwaitSafe blocks until the paired Promise publishes, or it is abandoned.
// Abandonment is reported as a DroppedPromise failure rather than a panic.
func (f *Future[A]) AwaitSafe() result.Try[A] {
	r, dropped := f.awaitChannel()
	if dropped {
		return result.Err[A](DroppedPromise{})
	}

	return r
}

// AwaitContext blocks until the paired Promise publishes, the Promise is
// abandoned, or ctx is done, whichever happens first. Abandonment surfaces
// as DroppedPromise, the same outer failure AwaitSafe uses; a context
// deadline or cancellation surfaces as ctx.Err() instead.
func (f *Future[A]) AwaitContext(ctx context.Context) result.Try[A] {
	ch := make(chan result.Try[A], 1)

	f.resolveRaw(installedCallback[A]{
		fire: func(r result.Try[A]) { ch <- r },
		drop: func() { close(ch) },
	})

	select {
	case r, ok := <-ch:
		if !ok {
			return result.Err[A](DroppedPromise{})
		}

		return r
	case <-ctx.Done():
		return result.Err[A](ctx.Err())
	}
}

// Channel installs a callback that forwards the outcome into the returned
// channel, then closes it. The channel is closed without a value if the
// Promise is abandoned without publishing.
func (f *Future[A]) Channel() <-chan result.Try[A] {
	ch := make(chan result.Try[A], 1)

	f.resolveRaw(installedCallback[A]{
		fire: func(r result.Try[A]) {
			ch <- r
			close(ch)
		},
		drop: func() { close(ch) },
	})

	return ch
}

// awaitChannel is shared by Await and AwaitSafe: it installs a callback
// that forwards the outcome through a one-shot channel and blocks on it.
// If the Promise is abandoned before publishing, the cell destroys the
// callback instead of firing it; the drop hook below closes the channel in
// that case, which is how the receiver tells abandonment apart from an
// ordinary publish.
func (f *Future[A]) awaitChannel() (result.Try[A], bool) {
	ch := make(chan result.Try[A], 1)

	f.resolveRaw(installedCallback[A]{
		fire: func(r result.Try[A]) { ch <- r },
		drop: func() { close(ch) },
	})

	r, ok := <-ch

	return r, !ok
}

package rendezvous

import (
	"runtime"

	"go.uber.org/atomic"

	"github.com/amp-labs/rendezvous/result"
)

// Promise is the producer-side handle on a single asynchronous outcome. It
// is single-shot: Publish consumes it, and calling Publish twice, or after
// Abandon, is a programmer error and panics; a repeated Abandon is a no-op.
// A Promise is freely transferable
// to another goroutine: the cell's mutex serializes the hand-off, so the
// transfer is safe as long as the payload type itself is safe to move
// across goroutines, which is the caller's concern, not this package's.
type Promise[A any] struct {
	cell     *cell[A]
	consumed *atomic.Bool
}

func newPromise[A any](c *cell[A]) *Promise[A] {
	p := &Promise[A]{cell: c, consumed: atomic.NewBool(false)}

	runtime.SetFinalizer(p, func(p *Promise[A]) {
		if p.consumed.CompareAndSwap(false, true) {
			p.cell.markDead()
		}
	})

	return p
}

func (p *Promise[A]) consume() {
	if !p.consumed.CompareAndSwap(false, true) {
		panic("rendezvous: Promise used more than once")
	}
}

// Abandon drops the Promise without publishing, consuming it. Any callback
// already installed on the paired Future is destroyed rather than ever
// fired; a later AwaitSafe on that Future reports DroppedPromise. Go has no
// destructors, so a Promise that simply falls out of scope without
// publishing is caught, eventually, by the finalizer installed at
// construction; Abandon exists so tests and callers that know they are
// discarding a Promise can make the abandonment happen deterministically.
func (p *Promise[A]) Abandon() {
	if !p.consumed.CompareAndSwap(false, true) {
		return
	}

	p.cell.markDead()
}

// Publish consumes the Promise and makes result available to the paired
// Future: if a callback is already installed, it is invoked with result
// on this goroutine after the cell's mutex is released; if the Future has
// already been abandoned, result is discarded silently.
func (p *Promise[A]) Publish(r result.Try[A]) {
	p.consume()
	p.cell.tryPublish(r)
}

// Success publishes a success outcome.
func (p *Promise[A]) Success(value A) {
	p.Publish(result.Ok(value))
}

// Failure publishes a failure outcome.
func (p *Promise[A]) Failure(err error) {
	p.Publish(result.Err[A](err))
}

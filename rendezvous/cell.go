// Package rendezvous implements a single-assignment future/promise pair: a
// Future (consumer handle) and a Promise (producer handle) that share one
// rendezvous cell. Whichever side arrives first at the cell stores its
// contribution; the second side observes it and performs the join, invoking
// the installed callback with the published result exactly once.
//
// The package provides no executor, scheduler, or timer. Derived operations
// (Map, AndThen, Transform, ...) are thin compositions over the same cell
// primitive; Spawn and SpawnAll are the only places a goroutine is launched
// on the package's behalf.
package rendezvous

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/amp-labs/rendezvous/result"
)

// installedCallback is the consumer's single-use contribution to the cell.
// fire runs when the producer publishes; drop runs instead, in place of
// fire, if the callback is destroyed because the producer was abandoned
// first. Most callers have no use for drop and leave it nil.
type installedCallback[A any] struct {
	fire func(result.Try[A])
	drop func()
}

// cell is the rendezvous point shared by exactly one Future and one Promise.
// Its state is one of: empty, holds a published result, holds an installed
// callback, or terminal (fired, or abandoned because a peer was dropped
// before contributing). All inspections and transitions happen under mu;
// alive additionally carries the liveness flag as a monotonic atomic flag;
// it too is only read and written while mu is held.
type cell[A any] struct {
	mu sync.Mutex

	hasResult bool
	result    result.Try[A]

	hasCallback bool
	callback    installedCallback[A]

	alive *atomic.Bool

	id uuid.UUID
}

func newCell[A any]() *cell[A] {
	return &cell[A]{
		alive: atomic.NewBool(true),
		id:    uuid.New(),
	}
}

// tryPublish stores result, or invokes an already-installed callback with
// it. Invoked exactly once per Promise. The callback, if present, is taken
// out of the cell and invoked after the mutex is released so that user code
// (which may chain into another cell) can never re-enter this one while it
// is held.
func (c *cell[A]) tryPublish(r result.Try[A]) {
	c.mu.Lock()

	if c.hasCallback {
		cb := c.callback.fire
		c.callback = installedCallback[A]{}
		c.hasCallback = false

		c.mu.Unlock()

		cb(r)

		return
	}

	if c.alive.Load() {
		c.result = r
		c.hasResult = true
	}

	c.mu.Unlock()
}

// tryInstall stores cb, or invokes its fire function immediately with an
// already published result. Invoked exactly once per Future when it is
// consumed. If the peer has already been abandoned, cb.drop is invoked (if
// non-nil) instead of being silently discarded, so that cb's own
// destruction can still observe abandonment (see Future.awaitChannel).
func (c *cell[A]) tryInstall(cb installedCallback[A]) {
	c.mu.Lock()

	if c.hasResult {
		r := c.result
		c.hasResult = false

		c.mu.Unlock()

		cb.fire(r)

		return
	}

	if c.alive.Load() {
		c.callback = cb
		c.hasCallback = true

		c.mu.Unlock()

		return
	}

	c.mu.Unlock()

	if cb.drop != nil {
		cb.drop()
	}
}

// markDead sets the liveness flag false. Transitions are monotonic: once
// dead, a cell never becomes alive again. Called when a Future or Promise
// is abandoned (explicitly, or via finalizer) without ever resolving the
// rendezvous. If a callback was already installed and waiting, it is
// destroyed here: its drop hook runs (outside the lock), never its fire
// hook.
func (c *cell[A]) markDead() {
	c.mu.Lock()

	c.alive.Store(false)
	c.hasResult = false

	var dropped func()

	if c.hasCallback {
		dropped = c.callback.drop
		c.callback = installedCallback[A]{}
		c.hasCallback = false
	}

	c.mu.Unlock()

	if dropped != nil {
		dropped()
	}
}

// isResolved reports whether an unclaimed result currently sits in the
// cell. Non-consuming.
func (c *cell[A]) isResolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hasResult
}

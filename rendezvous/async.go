package rendezvous

import "github.com/amp-labs/rendezvous/internal/rzlog"

// Async runs f on a fresh goroutine via Spawn and does not return a Future:
// it is fire-and-forget, for callers with no consumer to hand a result to.
// A panic inside f is recovered by Spawn and logged here rather than
// surfaced, since there is nothing downstream to surface it to.
func Async(f func()) {
	AsyncWithError(func() error {
		f()

		return nil
	})
}

// AsyncWithError is the fire-and-forget counterpart of Spawn for functions
// that can fail: f's error (or a recovered panic, wrapped by Spawn) is
// logged through rzlog instead of being returned to a caller.
func AsyncWithError(f func() error) {
	fut := Spawn(func() (struct{}, error) {
		return struct{}{}, f()
	})

	id := fut.ID()

	fut.ResolveErr(func(err error) {
		rzlog.Get().Error("rendezvous.Async", "error", err, "future_id", id)
	})
}

package rendezvous

import "github.com/amp-labs/rendezvous/result"

// abandoner is satisfied by every *Promise[X]. It lets the derived
// operations below propagate abandonment downstream without naming the
// downstream Promise's own type parameter.
type abandoner interface {
	Abandon()
}

// installChained installs fire on f with a drop hook that abandons
// downstream immediately. If f's own Promise turns out to have been
// abandoned, downstream is abandoned synchronously in the same call rather
// than waiting for downstream's orphaned Promise to be garbage collected
// and finalized, so abandonment propagates through a chain of derived
// operations without depending on GC timing.
func installChained[A any](f *Future[A], fire func(result.Try[A]), downstream abandoner) {
	f.resolveRaw(installedCallback[A]{
		fire: fire,
		drop: downstream.Abandon,
	})
}

// Map consumes f and returns a new Future whose success is remapped by fn.
// A failure passes through unchanged. Map changes the success type, so it
// is a free function rather than a method: a method cannot introduce a new
// type parameter beyond its receiver's.
func Map[A, B any](f *Future[A], fn func(A) B) *Future[B] {
	nf, np := New[B]()

	installChained(f, func(r result.Try[A]) {
		if r.IsFailure() {
			np.Failure(r.Error)

			return
		}

		np.Success(fn(r.Value))
	}, np)

	return nf
}

// MapErr consumes f and returns a new Future whose failure is remapped by
// fn. A success passes through unchanged.
func (f *Future[A]) MapErr(fn func(error) error) *Future[A] {
	nf, np := New[A]()

	installChained(f, func(r result.Try[A]) {
		if r.IsSuccess() {
			np.Success(r.Value)

			return
		}

		np.Failure(fn(r.Error))
	}, np)

	return nf
}

// Handle consumes f and returns a new Future whose failure is converted
// into a success by fn. A success passes through unchanged.
func (f *Future[A]) Handle(fn func(error) A) *Future[A] {
	nf, np := New[A]()

	installChained(f, func(r result.Try[A]) {
		if r.IsSuccess() {
			np.Success(r.Value)

			return
		}

		np.Success(fn(r.Error))
	}, np)

	return nf
}

// AndThen consumes f and chains a fallible success transform: fn runs on a
// success and its own (value, error) outcome becomes the downstream
// outcome; an upstream failure short-circuits fn entirely and passes
// through.
func AndThen[A, B any](f *Future[A], fn func(A) (B, error)) *Future[B] {
	nf, np := New[B]()

	installChained(f, func(r result.Try[A]) {
		if r.IsFailure() {
			np.Failure(r.Error)

			return
		}

		np.Publish(func() result.Try[B] {
			value, err := fn(r.Value)

			return result.Try[B]{Value: value, Error: err}
		}())
	}, np)

	return nf
}

// Rescue consumes f and chains a fallible failure transform: fn runs on a
// failure and its own (value, error) outcome becomes the downstream
// outcome; an upstream success short-circuits fn entirely and passes
// through.
func (f *Future[A]) Rescue(fn func(error) (A, error)) *Future[A] {
	nf, np := New[A]()

	installChained(f, func(r result.Try[A]) {
		if r.IsSuccess() {
			np.Success(r.Value)

			return
		}

		value, err := fn(r.Error)
		np.Publish(result.Try[A]{Value: value, Error: err})
	}, np)

	return nf
}

// Transform consumes f and applies fn to the entire outcome, success or
// failure alike, producing a new outcome of a possibly different success
// type. It is the fully general derived operation: Map, MapErr, Handle, and
// AndThen are all expressible in terms of it.
func Transform[A, B any](f *Future[A], fn func(result.Try[A]) result.Try[B]) *Future[B] {
	nf, np := New[B]()

	installChained(f, func(r result.Try[A]) {
		np.Publish(fn(r))
	}, np)

	return nf
}

// AndThenF consumes f and chains a future-returning success transform: fn
// runs on a success and returns a Future whose eventual outcome becomes
// the downstream outcome. The downstream Future only resolves once that
// inner Future resolves; if either f's own Promise or the inner Future's
// Promise is abandoned, the downstream Promise is abandoned in turn
// immediately, so a blocking wait on it surfaces DroppedPromise without
// waiting on a garbage collection pass.
func AndThenF[A, B any](f *Future[A], fn func(A) *Future[B]) *Future[B] {
	nf, np := New[B]()

	installChained(f, func(r result.Try[A]) {
		if r.IsFailure() {
			np.Failure(r.Error)

			return
		}

		installChained(fn(r.Value), func(inner result.Try[B]) {
			np.Publish(inner)
		}, np)
	}, np)

	return nf
}

// RescueF consumes f and chains a future-returning failure transform,
// symmetric to AndThenF.
func (f *Future[A]) RescueF(fn func(error) *Future[A]) *Future[A] {
	nf, np := New[A]()

	installChained(f, func(r result.Try[A]) {
		if r.IsSuccess() {
			np.Success(r.Value)

			return
		}

		installChained(fn(r.Error), func(inner result.Try[A]) {
			np.Publish(inner)
		}, np)
	}, np)

	return nf
}

// TransformF consumes f and applies a future-returning transform to the
// entire outcome, the future-returning counterpart of Transform.
func TransformF[A, B any](f *Future[A], fn func(result.Try[A]) *Future[B]) *Future[B] {
	nf, np := New[B]()

	installChained(f, func(r result.Try[A]) {
		installChained(fn(r), func(inner result.Try[B]) {
			np.Publish(inner)
		}, np)
	}, np)

	return nf
}

// OnSuccess consumes f and returns a new Future that resolves to the same
// outcome; if that outcome is a success, fn observes the value first,
// without consuming it, before the outcome is forwarded downstream.
func (f *Future[A]) OnSuccess(fn func(A)) *Future[A] {
	nf, np := New[A]()

	installChained(f, func(r result.Try[A]) {
		if r.IsSuccess() {
			fn(r.Value)
		}

		np.Publish(r)
	}, np)

	return nf
}

// OnErr consumes f and returns a new Future that resolves to the same
// outcome; if that outcome is a failure, fn observes the error first,
// without consuming it, before the outcome is forwarded downstream.
func (f *Future[A]) OnErr(fn func(error)) *Future[A] {
	nf, np := New[A]()

	installChained(f, func(r result.Try[A]) {
		if r.IsFailure() {
			fn(r.Error)
		}

		np.Publish(r)
	}, np)

	return nf
}

// OnCompletion consumes f and returns a new Future that resolves to the
// same outcome; fn observes the whole outcome, without consuming it,
// before it is forwarded downstream.
func (f *Future[A]) OnCompletion(fn func(result.Try[A])) *Future[A] {
	nf, np := New[A]()

	installChained(f, func(r result.Try[A]) {
		fn(r)
		np.Publish(r)
	}, np)

	return nf
}

package rendezvous

import (
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/amp-labs/rendezvous/internal/tuple"
	"github.com/amp-labs/rendezvous/rendezvouserrors"
	"github.com/amp-labs/rendezvous/result"
)

// Join2 returns a Future of the pair of fa and fb's successes, in order. If
// either fails, the join fails with the first failure reached along the
// left-to-right dependency chain; a later future in the chain is never
// awaited once an earlier one has short-circuited it. Built, like the rest
// of the JoinN family, by folding AndThenF left to right over the inputs.
func Join2[A, B any](fa *Future[A], fb *Future[B]) *Future[tuple.Tuple2[A, B]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple2[A, B]] {
		return Map(fb, func(b B) tuple.Tuple2[A, B] {
			return tuple.NewTuple2(a, b)
		})
	})
}

func Join3[A, B, C any](fa *Future[A], fb *Future[B], fc *Future[C]) *Future[tuple.Tuple3[A, B, C]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple3[A, B, C]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple3[A, B, C]] {
			return Map(fc, func(c C) tuple.Tuple3[A, B, C] {
				return tuple.NewTuple3(a, b, c)
			})
		})
	})
}

func Join4[A, B, C, D any](
	fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D],
) *Future[tuple.Tuple4[A, B, C, D]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple4[A, B, C, D]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple4[A, B, C, D]] {
			return AndThenF(fc, func(c C) *Future[tuple.Tuple4[A, B, C, D]] {
				return Map(fd, func(d D) tuple.Tuple4[A, B, C, D] {
					return tuple.NewTuple4(a, b, c, d)
				})
			})
		})
	})
}

func Join5[A, B, C, D, E any](
	fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D], fe *Future[E],
) *Future[tuple.Tuple5[A, B, C, D, E]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple5[A, B, C, D, E]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple5[A, B, C, D, E]] {
			return AndThenF(fc, func(c C) *Future[tuple.Tuple5[A, B, C, D, E]] {
				return AndThenF(fd, func(d D) *Future[tuple.Tuple5[A, B, C, D, E]] {
					return Map(fe, func(e E) tuple.Tuple5[A, B, C, D, E] {
						return tuple.NewTuple5(a, b, c, d, e)
					})
				})
			})
		})
	})
}

func Join6[A, B, C, D, E, F any](
	fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D], fe *Future[E], ff *Future[F],
) *Future[tuple.Tuple6[A, B, C, D, E, F]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple6[A, B, C, D, E, F]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple6[A, B, C, D, E, F]] {
			return AndThenF(fc, func(c C) *Future[tuple.Tuple6[A, B, C, D, E, F]] {
				return AndThenF(fd, func(d D) *Future[tuple.Tuple6[A, B, C, D, E, F]] {
					return AndThenF(fe, func(e E) *Future[tuple.Tuple6[A, B, C, D, E, F]] {
						return Map(ff, func(fv F) tuple.Tuple6[A, B, C, D, E, F] {
							return tuple.NewTuple6(a, b, c, d, e, fv)
						})
					})
				})
			})
		})
	})
}

func Join7[A, B, C, D, E, F, G any](
	fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D], fe *Future[E], ff *Future[F], fg *Future[G],
) *Future[tuple.Tuple7[A, B, C, D, E, F, G]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple7[A, B, C, D, E, F, G]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple7[A, B, C, D, E, F, G]] {
			return AndThenF(fc, func(c C) *Future[tuple.Tuple7[A, B, C, D, E, F, G]] {
				return AndThenF(fd, func(d D) *Future[tuple.Tuple7[A, B, C, D, E, F, G]] {
					return AndThenF(fe, func(e E) *Future[tuple.Tuple7[A, B, C, D, E, F, G]] {
						return AndThenF(ff, func(fv F) *Future[tuple.Tuple7[A, B, C, D, E, F, G]] {
							return Map(fg, func(g G) tuple.Tuple7[A, B, C, D, E, F, G] {
								return tuple.NewTuple7(a, b, c, d, e, fv, g)
							})
						})
					})
				})
			})
		})
	})
}

func Join8[A, B, C, D, E, F, G, H any](
	fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D],
	fe *Future[E], ff *Future[F], fg *Future[G], fh *Future[H],
) *Future[tuple.Tuple8[A, B, C, D, E, F, G, H]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple8[A, B, C, D, E, F, G, H]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple8[A, B, C, D, E, F, G, H]] {
			return AndThenF(fc, func(c C) *Future[tuple.Tuple8[A, B, C, D, E, F, G, H]] {
				return AndThenF(fd, func(d D) *Future[tuple.Tuple8[A, B, C, D, E, F, G, H]] {
					return AndThenF(fe, func(e E) *Future[tuple.Tuple8[A, B, C, D, E, F, G, H]] {
						return AndThenF(ff, func(fv F) *Future[tuple.Tuple8[A, B, C, D, E, F, G, H]] {
							return AndThenF(fg, func(g G) *Future[tuple.Tuple8[A, B, C, D, E, F, G, H]] {
								return Map(fh, func(h H) tuple.Tuple8[A, B, C, D, E, F, G, H] {
									return tuple.NewTuple8(a, b, c, d, e, fv, g, h)
								})
							})
						})
					})
				})
			})
		})
	})
}

func Join9[A, B, C, D, E, F, G, H, I any](
	fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D], fe *Future[E],
	ff *Future[F], fg *Future[G], fh *Future[H], fi *Future[I],
) *Future[tuple.Tuple9[A, B, C, D, E, F, G, H, I]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple9[A, B, C, D, E, F, G, H, I]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple9[A, B, C, D, E, F, G, H, I]] {
			return AndThenF(fc, func(c C) *Future[tuple.Tuple9[A, B, C, D, E, F, G, H, I]] {
				return AndThenF(fd, func(d D) *Future[tuple.Tuple9[A, B, C, D, E, F, G, H, I]] {
					return AndThenF(fe, func(e E) *Future[tuple.Tuple9[A, B, C, D, E, F, G, H, I]] {
						return AndThenF(ff, func(fv F) *Future[tuple.Tuple9[A, B, C, D, E, F, G, H, I]] {
							return AndThenF(fg, func(g G) *Future[tuple.Tuple9[A, B, C, D, E, F, G, H, I]] {
								return AndThenF(fh, func(h H) *Future[tuple.Tuple9[A, B, C, D, E, F, G, H, I]] {
									return Map(fi, func(i I) tuple.Tuple9[A, B, C, D, E, F, G, H, I] {
										return tuple.NewTuple9(a, b, c, d, e, fv, g, h, i)
									})
								})
							})
						})
					})
				})
			})
		})
	})
}

func Join10[A, B, C, D, E, F, G, H, I, J any](
	fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D], fe *Future[E],
	ff *Future[F], fg *Future[G], fh *Future[H], fi *Future[I], fj *Future[J],
) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
			return AndThenF(fc, func(c C) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
				return AndThenF(fd, func(d D) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
					return AndThenF(fe, func(e E) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
						return AndThenF(ff, func(fv F) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
							return AndThenF(fg, func(g G) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
								return AndThenF(fh, func(h H) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
									return AndThenF(fi, func(i I) *Future[tuple.Tuple10[A, B, C, D, E, F, G, H, I, J]] {
										return Map(fj, func(j J) tuple.Tuple10[A, B, C, D, E, F, G, H, I, J] {
											return tuple.NewTuple10(a, b, c, d, e, fv, g, h, i, j)
										})
									})
								})
							})
						})
					})
				})
			})
		})
	})
}

func Join11[A, B, C, D, E, F, G, H, I, J, K any](
	fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D], fe *Future[E], ff *Future[F],
	fg *Future[G], fh *Future[H], fi *Future[I], fj *Future[J], fk *Future[K],
) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
			return AndThenF(fc, func(c C) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
				return AndThenF(fd, func(d D) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
					return AndThenF(fe, func(e E) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
						return AndThenF(ff, func(fv F) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
							return AndThenF(fg, func(g G) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
								return AndThenF(fh, func(h H) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
									return AndThenF(fi, func(i I) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
										return AndThenF(fj, func(j J) *Future[tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
											return Map(fk, func(k K) tuple.Tuple11[A, B, C, D, E, F, G, H, I, J, K] {
												return tuple.NewTuple11(a, b, c, d, e, fv, g, h, i, j, k)
											})
										})
									})
								})
							})
						})
					})
				})
			})
		})
	})
}

func Join12[A, B, C, D, E, F, G, H, I, J, K, L any](
	fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D], fe *Future[E], ff *Future[F],
	fg *Future[G], fh *Future[H], fi *Future[I], fj *Future[J], fk *Future[K], fl *Future[L],
) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
	return AndThenF(fa, func(a A) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
		return AndThenF(fb, func(b B) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
			return AndThenF(fc, func(c C) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
				return AndThenF(fd, func(d D) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
					return AndThenF(fe, func(e E) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
						return AndThenF(ff, func(fv F) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
							return AndThenF(fg, func(g G) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
								return AndThenF(fh, func(h H) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
									return AndThenF(fi, func(i I) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
										return AndThenF(fj, func(j J) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
											return AndThenF(fk, func(k K) *Future[tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
												return Map(fl, func(l L) tuple.Tuple12[A, B, C, D, E, F, G, H, I, J, K, L] {
													return tuple.NewTuple12(a, b, c, d, e, fv, g, h, i, j, k, l)
												})
											})
										})
									})
								})
							})
						})
					})
				})
			})
		})
	})
}

// Collect turns an ordered, finite slice of Futures into a Future of the
// ordered slice of their successes. It resolves to the first failure
// encountered in iteration order, preserving the "not awaited once
// short-circuited" rule JoinN relies on: folding with AndThenF means a
// later input's callback is never even installed once an earlier one has
// failed.
func Collect[A any](futures []*Future[A]) *Future[[]A] {
	acc := Value[[]A](nil)

	for _, fut := range futures {
		fut := fut

		acc = AndThenF(acc, func(soFar []A) *Future[[]A] {
			return Map(fut, func(v A) []A {
				next := make([]A, len(soFar), len(soFar)+1)
				copy(next, soFar)

				return append(next, v)
			})
		})
	}

	return acc
}

// CollectAll is the non-short-circuiting sibling of Collect: every input is
// awaited regardless of earlier failures, and every failure is reported
// together via rendezvouserrors.Collection, rather than stopping at the
// first one. Successes are still returned in input order, alongside the
// combined error (nil if every input succeeded).
func CollectAll[A any](futures []*Future[A]) *Future[result.Try[[]A]] {
	nf, np := New[result.Try[[]A]]()

	n := len(futures)
	values := make([]A, n)
	remaining := n

	if n == 0 {
		np.Success(result.Ok[[]A](nil))

		return nf
	}

	var mu sync.Mutex

	var errs rendezvouserrors.Collection

	for i, fut := range futures {
		i, fut := i, fut

		fut.Resolve(func(r result.Try[A]) {
			mu.Lock()

			if r.IsSuccess() {
				values[i] = r.Value
			} else {
				errs.Add(r.Error)
			}

			remaining--
			done := remaining == 0

			mu.Unlock()

			if done {
				np.Success(result.Try[[]A]{Value: values, Error: errs.GetError()})
			}
		})
	}

	return nf
}

// JoinAllTuple2 is the non-short-circuiting sibling of Join2: both fa and fb
// are always awaited, even if one fails, and their failures are combined via
// rendezvouserrors.Collection rather than stopping at the first. The other
// arities in the JoinN family admit the same non-short-circuiting variant;
// JoinAllTuple2 and JoinAllTuple3 are carried as the representative pair.
// Unlike Join2/Join3, which fold AndThenF, each input is resolved
// independently and a shared counter publishes once all have completed.
func JoinAllTuple2[A, B any](fa *Future[A], fb *Future[B]) *Future[tuple.Tuple2[A, B]] {
	nf, np := New[tuple.Tuple2[A, B]]()

	var (
		mu        sync.Mutex
		a         A
		b         B
		errs      rendezvouserrors.Collection
		remaining = 2
	)

	complete := func() {
		mu.Lock()
		remaining--
		done := remaining == 0
		mu.Unlock()

		if !done {
			return
		}

		if err := errs.GetError(); err != nil {
			np.Failure(err)

			return
		}

		np.Success(tuple.NewTuple2(a, b))
	}

	fa.Resolve(func(r result.Try[A]) {
		mu.Lock()

		if r.IsSuccess() {
			a = r.Value
		} else {
			errs.Add(r.Error)
		}

		mu.Unlock()

		complete()
	})

	fb.Resolve(func(r result.Try[B]) {
		mu.Lock()

		if r.IsSuccess() {
			b = r.Value
		} else {
			errs.Add(r.Error)
		}

		mu.Unlock()

		complete()
	})

	return nf
}

// JoinAllTuple3 is the 3-ary non-short-circuiting join, built the same way
// as JoinAllTuple2.
func JoinAllTuple3[A, B, C any](fa *Future[A], fb *Future[B], fc *Future[C]) *Future[tuple.Tuple3[A, B, C]] {
	nf, np := New[tuple.Tuple3[A, B, C]]()

	var (
		mu        sync.Mutex
		a         A
		b         B
		c         C
		errs      rendezvouserrors.Collection
		remaining = 3
	)

	complete := func() {
		mu.Lock()
		remaining--
		done := remaining == 0
		mu.Unlock()

		if !done {
			return
		}

		if err := errs.GetError(); err != nil {
			np.Failure(err)

			return
		}

		np.Success(tuple.NewTuple3(a, b, c))
	}

	fa.Resolve(func(r result.Try[A]) {
		mu.Lock()

		if r.IsSuccess() {
			a = r.Value
		} else {
			errs.Add(r.Error)
		}

		mu.Unlock()

		complete()
	})

	fb.Resolve(func(r result.Try[B]) {
		mu.Lock()

		if r.IsSuccess() {
			b = r.Value
		} else {
			errs.Add(r.Error)
		}

		mu.Unlock()

		complete()
	})

	fc.Resolve(func(r result.Try[C]) {
		mu.Lock()

		if r.IsSuccess() {
			c = r.Value
		} else {
			errs.Add(r.Error)
		}

		mu.Unlock()

		complete()
	})

	return nf
}

// Spawn runs f on a fresh goroutine and returns a Future for its outcome.
// The core owns nothing beyond the launch: there is no pool, no scheduling
// policy, and no way to cancel the goroutine once started. A panic inside f
// is recovered and published as a failure wrapping rendezvouserrors.ErrPanicRecovery
// rather than crashing the process, since a spawned goroutine has no other
// way to report a panic to its caller.
func Spawn[A any](f func() (A, error)) *Future[A] {
	nf, np := New[A]()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				np.Failure(rendezvouserrors.GetPanicRecoveryError(rec, debug.Stack()))
			}
		}()

		value, err := f()
		np.Publish(result.Try[A]{Value: value, Error: err})
	}()

	return nf
}

// SpawnAll runs every function in fs concurrently on its own goroutine,
// using an errgroup.Group to aggregate their outcomes, and returns a single
// Future for the ordered slice of successes. The first error or recovered
// panic returned by any worker becomes the aggregate's failure, published
// only after every worker has returned; no worker is cancelled. Input
// order is preserved on success.
func SpawnAll[A any](fs ...func() (A, error)) *Future[[]A] {
	nf, np := New[[]A]()

	go func() {
		values := make([]A, len(fs))

		var g errgroup.Group

		for i, f := range fs {
			i, f := i, f

			g.Go(func() (err error) {
				defer func() {
					if rec := recover(); rec != nil {
						err = rendezvouserrors.GetPanicRecoveryError(rec, debug.Stack())
					}
				}()

				value, ferr := f()
				if ferr != nil {
					return ferr
				}

				values[i] = value

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			np.Failure(err)

			return
		}

		np.Success(values)
	}()

	return nf
}

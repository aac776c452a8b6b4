package rendezvous

import "github.com/amp-labs/rendezvous/rendezvouserrors"

// DroppedPromise is the recoverable error surfaced by AwaitSafe (and by any
// derived operation whose upstream producer was abandoned) when the
// producer side of a rendezvous was dropped before ever publishing a
// result. The unsafe Await panics on the same condition instead. It
// unwraps to rendezvouserrors.ErrDroppedPromise so callers that only know
// about that package's sentinel still match it with errors.Is.
type DroppedPromise struct{}

func (DroppedPromise) Error() string {
	return "The producer associated with this future was dropped without publishing a result"
}

func (DroppedPromise) Unwrap() error {
	return rendezvouserrors.ErrDroppedPromise
}

// ErrDroppedPromise is a ready-to-compare instance of DroppedPromise, for
// callers that want errors.Is(err, rendezvous.ErrDroppedPromise) rather than
// a type assertion.
var ErrDroppedPromise error = DroppedPromise{} //nolint:gochecknoglobals

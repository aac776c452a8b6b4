// Package rendezvouserrors collects the sentinel errors and error-aggregation
// helpers shared across the rendezvous package.
package rendezvouserrors

import "errors"

var (
	// ErrPanicRecovery wraps a panic recovered from a user-supplied worker
	// function run by Spawn or SpawnAll. Panics in installed callbacks are not
	// recovered.
	ErrPanicRecovery = errors.New("panic recovered")

	// ErrDroppedPromise is returned by a blocking wait (and wrapped by
	// DroppedPromise) when the producer side of a cell is abandoned before
	// ever publishing a result.
	ErrDroppedPromise = errors.New("promise dropped before result was published")
)

// Collection is a thread-unsafe accumulator for errors produced by running
// several independent operations and wanting every failure back, not just
// the first.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// HasError reports whether the collection holds at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// GetError returns nil if empty, the single error if there is exactly one,
// or errors.Join of all of them otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}

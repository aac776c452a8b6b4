package rendezvouserrors

import "fmt"

// GetPanicRecoveryError converts a value recovered via recover() (and an
// optional debug.Stack() capture) into a standard error wrapping
// ErrPanicRecovery. Returns nil if recovered is nil.
func GetPanicRecoveryError(recovered any, stack []byte) error {
	if recovered == nil {
		return nil
	}

	recoveredErr, ok := recovered.(error)
	if ok {
		if stack != nil {
			return fmt.Errorf("%w: %w\nstack trace:\n%s", ErrPanicRecovery, recoveredErr, string(stack))
		}

		return fmt.Errorf("%w: %w", ErrPanicRecovery, recoveredErr)
	}

	if stack != nil {
		return fmt.Errorf("%w: %v\nstack trace:\n%s", ErrPanicRecovery, recovered, string(stack))
	}

	return fmt.Errorf("%w: %v", ErrPanicRecovery, recovered)
}

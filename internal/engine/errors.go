package engine

import "fmt"

// InvariantViolation is the panic value raised when evaluation hits a state
// that typechecking rules out: an unbound variable during substitution, an
// arity mismatch during unification, or a predicate missing from the
// database. These are bugs in the caller, not user errors, so they are fatal
// rather than returned.
type InvariantViolation struct {
	Message string
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %v", e.Message)
}

func invariantViolation(format string, args ...any) InvariantViolation {
	return InvariantViolation{Message: fmt.Sprintf(format, args...)}
}

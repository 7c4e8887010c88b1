package checkout

import "fmt"

// ValidationError means the input was bad and nothing was written. Always
// safe to retry after correcting the cart.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// PersistenceError means a collection write failed. If TransactionID is set
// the sale was already committed and later side effects are incomplete; the
// caller decides whether to treat the sale as done.
type PersistenceError struct {
	Step          string
	TransactionID string
	Err           error
}

func (e *PersistenceError) Error() string {
	if e.TransactionID != "" {
		return fmt.Sprintf("%s failed after commit (transaction %s): %v", e.Step, e.TransactionID, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// CollaboratorError covers bill rendering and delivery. Never fatal to a
// sale; surfaced as a warning next to the committed transaction.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
